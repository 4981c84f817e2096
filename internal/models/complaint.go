package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// Complaint represents a single submitted complaint together with its
// workflow state. TrackingID is the human-facing identifier handed to the
// student at submission time; it never changes afterwards.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	TrackingID  string `gorm:"uniqueIndex;not null" json:"trackingId"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"type:text;not null;index" json:"category"`
	Status      string `gorm:"type:text;not null;index" json:"status"` // "pending", "in-progress", "resolved", "rejected"

	IsAnonymous bool   `json:"isAnonymous"`
	UserID      string `gorm:"type:text;index" json:"userId,omitempty"`
	UserName    string `gorm:"type:text" json:"userName,omitempty"`

	// Attachments are stored as file names only; files are never uploaded.
	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments,omitempty"`

	Responses []Response `gorm:"foreignKey:ComplaintID" json:"responses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a new UUID for the complaint if the ID is not set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Redacted returns a copy safe to show to any viewer: the submitter identity
// is withheld whenever the complaint was filed anonymously. Identity stays in
// storage, only the representation drops it.
func (c Complaint) Redacted() Complaint {
	if c.IsAnonymous {
		c.UserID = ""
		c.UserName = ""
	}
	return c
}

// Response is one message in a complaint's thread. Responses are append-only:
// they are never edited, removed, or reordered once written.
type Response struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ComplaintID string    `gorm:"type:text;not null;index" json:"complaintId"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	UserID      string    `gorm:"type:text;not null" json:"userId"`
	UserName    string    `gorm:"type:text;not null" json:"userName"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate generates a new UUID for the response if the ID is not set yet.
func (r *Response) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

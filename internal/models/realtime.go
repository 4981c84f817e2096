package models

// Event types pushed over the live feed.
const (
	EventComplaintCreated = "complaint_created"
	EventStatusChanged    = "status_changed"
	EventResponseAdded    = "response_added"
)

// ComplaintEvent is the wire format published to Redis and forwarded to
// connected dashboard clients. OwnerID routes the event to the submitting
// student; admins receive every event.
type ComplaintEvent struct {
	Type        string `json:"type"` // "complaint_created", "status_changed", "response_added"
	ComplaintID string `json:"complaint_id"`
	TrackingID  string `json:"tracking_id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Anonymous   bool   `json:"anonymous,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// Redacted returns a copy with the owner withheld when the complaint is
// anonymous. The hub routes on the full event and hands clients the
// redacted copy; OwnerID never leaves the server for anonymous complaints.
func (e ComplaintEvent) Redacted() ComplaintEvent {
	if e.Anonymous {
		e.OwnerID = ""
	}
	return e
}

// Package complaint provides the core logic for the complaint workflow:
// submission, filtering, status transitions, response threads and aggregate
// statistics. Authorization is checked here, at the service boundary, against
// the session passed in by the caller.
package complaint

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/models"
	"campusvoice/backend/internal/storage"
)

// Notifier receives out-of-band notifications about new complaints.
// Implemented by the Telegram staff bot; nil disables notifications.
type Notifier interface {
	ComplaintSubmitted(c *models.Complaint)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SetNotifier attaches a staff notifier. Safe to leave unset.
func (s *Service) SetNotifier(n Notifier) {
	s.Notifier = n
}

// SubmitInput carries the fields of a new complaint.
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	IsAnonymous bool
	Attachments []string
}

// Submit validates and stores a new complaint on behalf of the actor.
// The submitter identity is always stored; anonymity only affects how the
// complaint is rendered.
func (s *Service) Submit(actor models.Session, in SubmitInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Message: "description is required"}
	}
	if !config.IsValidCategory(in.Category) {
		return nil, &ValidationError{Field: "category", Message: "unknown category"}
	}

	trackingID, err := s.generateTrackingID()
	if err != nil {
		return nil, err
	}

	c := &models.Complaint{
		TrackingID:  trackingID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Status:      config.StatusPending,
		IsAnonymous: in.IsAnonymous,
		UserID:      actor.UserID,
		UserName:    actor.UserName,
		Attachments: in.Attachments,
	}

	if err := s.Storage.CreateComplaint(c); err != nil {
		return nil, err
	}

	s.publishEvent(models.EventComplaintCreated, c)
	if s.Notifier != nil {
		s.Notifier.ComplaintSubmitted(c)
	}

	redacted := c.Redacted()
	return &redacted, nil
}

// List returns the complaints visible to the actor, newest first, narrowed by
// the filter. Admins see every complaint; students only their own.
func (s *Service) List(actor models.Session, f Filter) ([]models.Complaint, error) {
	var (
		complaints []models.Complaint
		err        error
	)
	if actor.IsAdmin() {
		complaints, err = s.Storage.ListComplaints()
	} else {
		complaints, err = s.Storage.ListComplaintsByUser(actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	complaints = Apply(complaints, f)
	for i := range complaints {
		complaints[i] = complaints[i].Redacted()
	}
	return complaints, nil
}

// Get returns one complaint with its response thread. Students may only read
// their own complaints.
func (s *Service) Get(actor models.Session, id string) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Resource: "complaint", Key: id}
	}
	if !actor.IsAdmin() && c.UserID != actor.UserID {
		return nil, &AuthorizationError{Action: "view this complaint"}
	}

	redacted := c.Redacted()
	return &redacted, nil
}

// Track looks a complaint up by its public tracking ID. No session required.
func (s *Service) Track(trackingID string) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByTrackingID(trackingID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Resource: "complaint", Key: trackingID}
	}

	redacted := c.Redacted()
	return &redacted, nil
}

// UpdateStatus sets a complaint to any of the four statuses. Only admins may
// transition status; there is no restriction on which transitions are legal.
// UpdatedAt advances on every transition.
func (s *Service) UpdateStatus(actor models.Session, id, status string) (*models.Complaint, error) {
	if !actor.IsAdmin() {
		return nil, &AuthorizationError{Action: "update complaint status"}
	}
	if !config.IsValidStatus(status) {
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Resource: "complaint", Key: id}
	}

	c.Status = status
	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}

	s.publishEvent(models.EventStatusChanged, c)

	redacted := c.Redacted()
	return &redacted, nil
}

// AddResponse appends a message to a complaint's thread. Either actor may
// respond; an empty message changes nothing and fails validation.
func (s *Service) AddResponse(actor models.Session, complaintID, message string) (*models.Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &ValidationError{Field: "message", Message: "message is required"}
	}

	c, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Resource: "complaint", Key: complaintID}
	}
	if !actor.IsAdmin() && c.UserID != actor.UserID {
		return nil, &AuthorizationError{Action: "respond to this complaint"}
	}

	r := &models.Response{
		ComplaintID: c.ID,
		Message:     message,
		UserID:      actor.UserID,
		UserName:    actor.UserName,
		IsAdmin:     actor.IsAdmin(),
	}
	if err := s.Storage.AppendResponse(r); err != nil {
		return nil, err
	}

	// A response is activity on the complaint, so its UpdatedAt advances too.
	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}

	s.publishEvent(models.EventResponseAdded, c)

	return r, nil
}

// Stats computes the dashboard aggregates over the full collection. Admin only.
func (s *Service) Stats(actor models.Session) (*models.ComplaintStats, error) {
	if !actor.IsAdmin() {
		return nil, &AuthorizationError{Action: "view complaint statistics"}
	}

	complaints, err := s.Storage.ListComplaints()
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(complaints)
	return &stats, nil
}

// generateTrackingID produces a fresh "TRK" + 6 digit identifier, retrying on
// the unlikely collision with an existing complaint.
func (s *Service) generateTrackingID() (string, error) {
	for i := 0; i < config.TrackingIDAttempts; i++ {
		candidate := fmt.Sprintf("%s%d", config.TrackingIDPrefix, config.TrackingIDMin+rand.Intn(config.TrackingIDSpan))
		exists, err := s.Storage.TrackingIDExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique tracking ID after %d attempts", config.TrackingIDAttempts)
}

func (s *Service) publishEvent(eventType string, c *models.Complaint) {
	// OwnerID stays on the published payload so the hub can route the event
	// to the submitting student; Anonymous tells the hub to withhold it from
	// the delivered copies.
	ev := models.ComplaintEvent{
		Type:        eventType,
		ComplaintID: c.ID,
		TrackingID:  c.TrackingID,
		Title:       c.Title,
		Status:      c.Status,
		Anonymous:   c.IsAnonymous,
		OwnerID:     c.UserID,
	}
	if err := s.Storage.PublishEvent(ev); err != nil {
		// The state change already committed; a missed event only costs a
		// dashboard refresh.
		log.Printf("ERROR: Failed to publish %s event for %s: %v", eventType, c.TrackingID, err)
	}
}

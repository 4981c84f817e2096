package livefeed

import "campusvoice/backend/internal/models"

// Client is the interface for one connected live-feed subscriber. It
// abstracts the underlying transport so the hub can manage connections
// uniformly.
type Client interface {
	// GetUserID returns the unique identifier for the user behind the client.
	GetUserID() string
	// IsAdmin reports whether the client receives every event or only events
	// for complaints it owns.
	IsAdmin() bool

	// GetSendChannel returns the channel the hub delivers events on. It is a
	// send-only channel.
	GetSendChannel() chan<- models.ComplaintEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close gracefully shuts down the client's connection and channels.
	Close()
}

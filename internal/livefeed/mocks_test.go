package livefeed_test

import (
	"campusvoice/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

type MockClient struct {
	userID      string
	admin       bool
	closed      bool
	RecvChannel chan models.ComplaintEvent
}

func newMockClient(userID string, admin bool) *MockClient {
	return &MockClient{
		userID:      userID,
		admin:       admin,
		RecvChannel: make(chan models.ComplaintEvent, 10),
	}
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) IsAdmin() bool {
	return c.admin
}

func (c *MockClient) GetSendChannel() chan<- models.ComplaintEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}

// MockEventSource returns a nil subscription, which disables the Redis
// listener so tests drive PubSubCh directly.
type MockEventSource struct{}

func (m *MockEventSource) SubscribeEvents() *redis.PubSub {
	return nil
}

// Package livefeed pushes complaint events to connected dashboards. Events
// are published to Redis by the complaint service and fan in here through a
// pub/sub subscription, so every running instance delivers to its own
// websocket clients.
package livefeed

import (
	"encoding/json"
	"log"

	"campusvoice/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// EventSource is the slice of the storage layer the hub needs: a live Redis
// subscription to the complaint event channel. A nil subscription disables
// the listener (tests, CLI mode).
type EventSource interface {
	SubscribeEvents() *redis.PubSub
}

// Hub keeps the registry of connected clients and routes events to them.
// Admin clients receive every event; a student client only receives events
// for complaints it owns.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	// PubSubCh carries events decoded from the Redis subscription.
	PubSubCh chan models.ComplaintEvent

	Storage EventSource
}

// NewHub creates a hub bound to the given event source.
func NewHub(s EventSource) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.ComplaintEvent, 64),
		Storage:      s,
	}
}

// StartEventListener runs a goroutine that feeds the Redis subscription into
// PubSubCh.
func (h *Hub) StartEventListener() {
	go func() {
		pubsub := h.Storage.SubscribeEvents()
		if pubsub == nil {
			return
		}
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.ComplaintEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling feed event: %v", err)
				continue
			}
			h.PubSubCh <- ev
		}
	}()
}

// Run is the hub's main loop. It owns the Clients map; all mutation happens
// here.
func (h *Hub) Run() {
	h.StartEventListener()

	for {
		select {
		case client := <-h.RegisterCh:
			// A reconnect replaces the previous connection for the same user.
			if old, ok := h.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			h.Clients[client.GetUserID()] = client

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.GetUserID()]; ok && current == client {
				delete(h.Clients, client.GetUserID())
				client.Close()
			}

		case ev := <-h.PubSubCh:
			h.deliver(ev)
		}
	}
}

// deliver routes one event to every client entitled to see it. Routing uses
// the full event; clients only ever receive the redacted copy, so the owner
// of an anonymous complaint is never exposed on the wire.
func (h *Hub) deliver(ev models.ComplaintEvent) {
	out := ev.Redacted()
	for userID, client := range h.Clients {
		if !client.IsAdmin() && userID != ev.OwnerID {
			continue
		}
		select {
		case client.GetSendChannel() <- out:
		default:
			// Slow consumer; drop the connection, the client will reconnect.
			delete(h.Clients, userID)
			client.Close()
		}
	}
}

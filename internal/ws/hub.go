package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mossvale/mossvale/internal/game"
	"github.com/mossvale/mossvale/internal/model"
)

// Hub tracks every live websocket client and delivers server events to
// them. It implements game.Sender: the dispatcher decides scope, the hub
// decides delivery.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[model.ConnectionID]*Client
}

// NewHub creates a new hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With(slog.String("component", "ws")),
		clients: make(map[model.ConnectionID]*Client),
	}
}

// Ensure Hub implements the dispatcher's sender interface
var _ game.Sender = (*Hub)(nil)

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		slog.String("connection_id", string(client.id)),
		slog.Int("total_clients", count))
}

// Unregister removes a client and closes its send channel. Unregistering
// a client twice is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.id)
	close(client.send)
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client unregistered",
		slog.String("connection_id", string(client.id)),
		slog.Int("total_clients", count))
}

// Fanout delivers one event to the connections selected by scope. Delivery
// is best effort: a client whose buffer is full has the message dropped
// rather than stalling the rest of the fan-out.
func (h *Hub) Fanout(scope game.Scope, origin model.ConnectionID, event model.EventType, payload any) {
	message, err := json.Marshal(model.ServerEvent{Type: event, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	switch scope {
	case game.ReplySender:
		if client, ok := h.clients[origin]; ok {
			h.send(client, event, message)
		}
	case game.BroadcastOthers:
		for id, client := range h.clients {
			if id == origin {
				continue
			}
			h.send(client, event, message)
		}
	case game.BroadcastAll:
		for _, client := range h.clients {
			h.send(client, event, message)
		}
	}
}

func (h *Hub) send(client *Client, event model.EventType, message []byte) {
	select {
	case client.send <- message:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("connection_id", string(client.id)),
			slog.String("event", string(event)))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
}

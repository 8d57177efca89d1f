package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mossvale/mossvale/internal/game"
	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/auth"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket connection. Its readPump goroutine is the only
// reader, so events from one connection reach the dispatcher in arrival
// order.
type Client struct {
	id         model.ConnectionID
	hub        *Hub
	dispatcher *game.Dispatcher
	conn       *websocket.Conn
	send       chan []byte
	logger     *slog.Logger
}

// ServeWS authenticates the request, upgrades it to a websocket and starts
// the client's pumps. The bearer token comes from the Authorization header
// or a token query parameter (browser WebSocket APIs cannot set headers).
func ServeWS(hub *Hub, dispatcher *game.Dispatcher, authService *auth.Service, logger *slog.Logger) http.HandlerFunc {
	logger = logger.With(slog.String("component", "ws"))

	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		if _, err := authService.ValidateSession(token); err != nil {
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		client := &Client{
			id:         model.ConnectionID(uuid.NewString()),
			hub:        hub,
			dispatcher: dispatcher,
			conn:       conn,
			send:       make(chan []byte, sendBufferSize),
			logger:     logger,
		}

		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	return r.URL.Query().Get("token")
}

// readPump reads client events and hands them to the dispatcher. When the
// read loop ends, for any reason, the connection is torn down: hub
// unregistration first so the leave broadcast reaches everyone remaining.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.dispatcher.HandleDisconnect(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error",
					slog.String("connection_id", string(c.id)),
					slog.String("error", err.Error()))
			}
			return
		}

		var event model.ClientEvent
		if err := json.Unmarshal(data, &event); err != nil {
			// Bad framing never tears the connection down
			c.logger.Warn("unparseable message dropped",
				slog.String("connection_id", string(c.id)),
				slog.String("error", err.Error()))
			continue
		}

		c.dispatcher.HandleEvent(context.Background(), c.id, event)
	}
}

// writePump forwards queued messages to the peer and keeps it alive with
// pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package websocket provides the WebSocket transport for live item-change
// subscriptions. Each connected client owns one broker subscription with
// its own mutation-kind filter; the hub only tracks connections for
// counting and shutdown.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/events"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// Hub maintains the set of active WebSocket clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		logger:     logger,
	}
}

// Run starts the hub's main loop. Should be called in a goroutine.
// The hub runs until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Graceful shutdown: tear down all client connections
			h.mu.Lock()
			for client := range h.clients {
				client.sub.Close()
				if client.conn != nil {
					_ = client.conn.Close()
				}
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			h.logger.Info().Msg("WebSocket hub shut down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", total).
				Msg("WebSocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.sub.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", total).
				Msg("WebSocket client disconnected")
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message is the envelope for messages sent to WebSocket clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// eventMessage frames a change event for the wire.
func eventMessage(event catalog.ChangeEvent) Message {
	return Message{
		Type:      "item." + string(event.Kind),
		Timestamp: event.Timestamp,
		Data: map[string]any{
			"item_id": event.ItemID,
		},
	}
}

// Client represents a WebSocket client connection holding one broker
// subscription.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	sub  *events.Subscription
}

// NewClient creates a new WebSocket client around an upgraded connection
// and its broker subscription.
func NewClient(id string, hub *Hub, conn *websocket.Conn, sub *events.Subscription) *Client {
	return &Client{
		id:   id,
		hub:  hub,
		conn: conn,
		sub:  sub,
	}
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// ReadPump consumes (and discards) messages from the peer until the
// connection drops, then tears the client down. Clients only listen on
// this endpoint; reading is how we notice the disconnect.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error().Err(err).Str("client_id", c.id).Msg("WebSocket read error")
			}
			break
		}
	}
}

// WritePump drains the client's broker subscription onto the WebSocket
// connection, interleaved with keepalive pings. It returns when the
// subscription ends or the peer stops responding.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.sub.Events():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Subscription ended (broker shutdown or slow-consumer drop)
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.writeMessage(eventMessage(event)); err != nil {
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

// Greet sends the initial connection acknowledgement to the client.
func (c *Client) Greet() error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := Message{
		Type:      "client.connected",
		Timestamp: time.Now().UTC(),
	}
	if filter := c.sub.Filter(); filter != nil {
		msg.Data = map[string]any{"filter": string(*filter)}
	}
	return c.writeMessage(msg)
}

func (c *Client) writeMessage(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error().Err(err).Msg("Failed to marshal WebSocket message")
		return nil
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

package wshub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"ramudu/internal/metrics"
)

// ClientMessage is the JSON structure received from clients. Data is decoded
// according to Event.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Limiter *rate.Limiter // nil means unlimited
}

func NewClient(id string, conn *websocket.Conn, limiter *rate.Limiter) *Client {
	return &Client{
		ID:      id,
		Conn:    conn,
		Send:    make(chan []byte, 32),
		Limiter: limiter,
	}
}

// Allow reports whether the client may run another action now.
func (c *Client) Allow() bool {
	return c.Limiter == nil || c.Limiter.Allow()
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks every open connection by id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	Metrics *metrics.Metrics
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// SendTo queues data for one client. Non-blocking: drops if channel full or
// the client is gone, and reports whether the message was queued.
func (h *Hub) SendTo(id string, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[id]
	if !ok {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		h.Metrics.IncDropped()
		return false
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

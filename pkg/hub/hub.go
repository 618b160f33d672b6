package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-dwell/internal/log"
)

// Hub tracks connected clients and broadcasts messages to them.
// All client bookkeeping happens on the goroutine running Run.
type Hub struct {
	name string
	log  *slog.Logger

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu    sync.RWMutex // Guards count and last
	count int
	last  *Message // Replayed to new clients
}

// New creates a hub; name appears in log lines.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		log:        log.With("hub", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run services the hub until ctx is done, then disconnects every client.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.mu.Lock()
			h.count = len(h.clients)
			last := h.last
			h.mu.Unlock()
			if last != nil {
				c.enqueue(*last)
			}
			h.log.Debug("client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}
			h.log.Debug("client disconnected", "clients", len(h.clients))

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.last = &msg
			h.mu.Unlock()
			for c := range h.clients {
				if !c.enqueue(msg) {
					h.drop(c)
					h.log.Warn("dropped slow client")
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.mu.Lock()
	h.count = len(h.clients)
	h.mu.Unlock()
}

// Broadcast queues msg for every client. It never blocks; when the queue is
// full the message is dropped, which is fine for status and preview frames.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debug("broadcast queue full, dropping message")
	}
}

// BroadcastJSON encodes v and broadcasts it
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(NewJSONMessage(data))
	return nil
}

// BroadcastBinary broadcasts binary data such as JPEG frames
func (h *Hub) BroadcastBinary(data []byte) {
	h.Broadcast(NewBinaryMessage(data))
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// internal/server/hub.go
package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mwiater/snrplot/internal/logging"
)

// Client is one connected viewer.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 8),
	}
}

// Hub tracks connected viewers and fans selection frames out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	unregister chan *Client
	done       chan struct{}
	closed     bool
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.closed = true
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mutex.Unlock()
			logging.LogEvent("[WS] client %s disconnected. Total: %d", client.ID, count)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					logging.LogEvent("[WS] client %s too slow, dropping", client.ID)
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds client before returning, so Deliver succeeds for it at
// once. After shutdown the client's queue is closed instead.
func (h *Hub) Register(client *Client) {
	h.mutex.Lock()
	if h.closed {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	h.clients[client] = true
	count := len(h.clients)
	h.mutex.Unlock()
	logging.LogEvent("[WS] client %s connected. Total: %d", client.ID, count)
}

// Unregister and Broadcast return immediately once Run has exited.

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Deliver queues message for a single client. It reports false when the
// client is gone or its queue is full.
func (h *Hub) Deliver(client *Client, message []byte) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if !h.clients[client] {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

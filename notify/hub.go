// Package notify delivers real-time events to users over websockets.
// Each user has a room; every live session of that user joins it.
package notify

import (
	"encoding/json"
	"log"
	"sync"

	"gigspace/models"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 256),
		done:       make(chan struct{}),
	}
}

// UserRoom returns the notification room for a user id.
func UserRoom(userID string) string {
	return "user_" + userID
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil {
				if conns[c] {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every live client channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Unregister detaches a client. Safe to call after Stop: once the run
// loop has exited the client channels are already closed, so the detach
// becomes a no-op instead of blocking.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify pushes an event to every live session of the user. Non-blocking
// and best-effort: if the hub is saturated the event is dropped and
// logged, never retried.
func (h *Hub) Notify(userID string, event models.HiredNotification) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("notify: marshal error: %v", err)
		return
	}

	select {
	case h.broadcast <- broadcastMsg{Room: UserRoom(userID), Data: data}:
	default:
		log.Printf("notify: dropping event for %s, hub saturated", userID)
	}
}

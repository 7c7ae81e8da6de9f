// Package notify is the operator notification surface. Notices are pushed to
// every websocket client watching an editing session; delivery is
// fire-and-forget.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/catalog-console/pkg/logger"
)

type Level string

const (
	LevelWarn    Level = "warn"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one message shown to the operator
type Notice struct {
	SessionID string    `json:"session_id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Client is one websocket subscriber of a session
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

type envelope struct {
	sessionID string
	data      []byte
}

// Hub fans notices out to the clients of each session
type Hub struct {
	// SessionID -> clients (one operator may have several tabs open)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan envelope, 1024),
	}
}

// Run dispatches registrations and notices until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			count := len(h.clients[client.SessionID])
			h.mu.Unlock()
			logger.Info("Notice client registered", map[string]interface{}{
				"session_id": client.SessionID,
				"clients":    count,
			})

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[msg.sessionID] {
				select {
				case client.Send <- msg.data:
				default:
					go h.Unregister(client)
					logger.Warn("Notice client send buffer full, disconnecting", map[string]interface{}{
						"session_id": msg.sessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	kept := make([]*Client, 0, len(list))
	found := false
	for _, c := range list {
		if c == client {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return
	}
	if len(kept) == 0 {
		delete(h.clients, client.SessionID)
	} else {
		h.clients[client.SessionID] = kept
	}
	close(client.Send)

	logger.Info("Notice client unregistered", map[string]interface{}{
		"session_id": client.SessionID,
		"remaining":  len(kept),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, list := range h.clients {
		for _, c := range list {
			close(c.Send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribers reports how many clients watch a session
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Publish queues a notice. A full queue drops the notice.
func (h *Hub) Publish(n Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	data, err := json.Marshal(n)
	if err != nil {
		logger.Error("Failed to marshal notice", err)
		return
	}

	select {
	case h.broadcast <- envelope{sessionID: n.SessionID, data: data}:
	default:
		logger.Warn("Notice queue full, notice dropped", map[string]interface{}{
			"session_id": n.SessionID,
		})
	}
}

func (h *Hub) Warn(sessionID, message string) {
	h.Publish(Notice{SessionID: sessionID, Level: LevelWarn, Message: message})
}

func (h *Hub) Success(sessionID, message string) {
	h.Publish(Notice{SessionID: sessionID, Level: LevelSuccess, Message: message})
}

func (h *Hub) Error(sessionID, message string) {
	h.Publish(Notice{SessionID: sessionID, Level: LevelError, Message: message})
}

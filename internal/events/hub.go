package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to subscribed clients.
const (
	TypeViewInvalidated = "view_invalidated"
	TypeSignedIn        = "signed_in"
	TypeSignedOut       = "signed_out"
)

type Event struct {
	Type   string    `json:"type"`
	View   string    `json:"view,omitempty"`
	UserID string    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// Hub fans events out to websocket subscribers. One connection per
// subscriber id; a reconnect replaces the old connection.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(subscriberID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[subscriberID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[subscriberID] = conn
}

func (h *Hub) Unregister(subscriberID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[subscriberID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, subscriberID)
	}
}

// Broadcast sends the event to every subscriber. Dead connections are
// dropped on write failure.
func (h *Hub) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mutex.RLock()
	conns := make(map[string]*websocket.Conn, len(h.connections))
	for id, c := range h.connections {
		conns[id] = c
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			h.Unregister(id)
		}
	}
}

// ViewInvalidated is the viewcache listener adapter.
func (h *Hub) ViewInvalidated(view string) {
	h.Broadcast(Event{Type: TypeViewInvalidated, View: view})
}

func (h *Hub) SessionChanged(eventType, userID string) {
	h.Broadcast(Event{Type: eventType, UserID: userID})
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}

package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is what goes over the wire to board/chat clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub fans events out to every open socket of a company. A user can have
// several tabs open, so connections are tracked per company, not per user.
type Hub struct {
	connections map[int64]map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(companyID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[companyID] == nil {
		h.connections[companyID] = make(map[*websocket.Conn]bool)
	}
	h.connections[companyID][conn] = true
}

func (h *Hub) Unregister(companyID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.connections[companyID]; exists {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, companyID)
		}
	}
}

// Broadcast sends the event to every connection of the company. Dead
// connections are dropped along the way.
func (h *Hub) Broadcast(companyID int64, event Event) int {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[companyID]))
	for conn := range h.connections[companyID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	sent := 0
	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(companyID, conn)
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) OnlineCount(companyID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[companyID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for companyID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, companyID)
	}
}

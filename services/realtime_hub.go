package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// MetricsUpdate is pushed to a user's open sockets after each
// committed drink.
type MetricsUpdate struct {
	UserID        string  `json:"user_id"`
	NeuronsKilled float64 `json:"neurons_killed"`
	LifeLost      float64 `json:"life_lost"`
}

type WSClient struct {
	UserID string
	Conn   *websocket.Conn

	// Serializes writes: the hub broadcast and the keepalive ping run
	// on different goroutines, and the connection allows one writer.
	writeMu sync.Mutex
}

func (c *WSClient) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) BroadcastMetrics(userID string, update MetricsUpdate) {
	msg, _ := json.Marshal(map[string]any{
		"kind":    "metrics.updated",
		"metrics": update,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Send(websocket.TextMessage, msg)
	}
}

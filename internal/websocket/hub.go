package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// ScanEvent tells connected kitchen dashboards how the latest expiry scan
// went, so they can refresh their "expiring soon" panels.
type ScanEvent struct {
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	SentCount       int       `json:"sent_count"`
	TotalCandidates int       `json:"total_candidates"`
	At              time.Time `json:"at"`
}

// NewScanEvent creates a scan_completed event stamped with the current time.
func NewScanEvent(status string, sentCount, totalCandidates int) ScanEvent {
	return ScanEvent{
		Type:            "scan_completed",
		Status:          status,
		SentCount:       sentCount,
		TotalCandidates: totalCandidates,
		At:              time.Now().UTC(),
	}
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(event ScanEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop the event
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package realtime

import (
	"encoding/json"
	"sync"
	"time"
)

// EventType names a change that happened on a project board.
type EventType string

const (
	EventProjectUpdated EventType = "project_updated"
	EventProjectDeleted EventType = "project_deleted"
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
	EventTasksReordered EventType = "tasks_reordered"
)

// Event is the payload pushed to websocket subscribers of a project.
type Event struct {
	Type      EventType `json:"type"`
	ProjectID string    `json:"projectId"`
	TaskID    string    `json:"taskId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Client represents a single websocket client connection.
// The network connection itself is owned by the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub keeps the subscribers of every project and fans events out to them.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[Client]struct{}),
	}
}

// Register subscribes a client to a project.
func (h *Hub) Register(projectID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[projectID]; !ok {
		h.subscribers[projectID] = make(map[Client]struct{})
	}
	h.subscribers[projectID][client] = struct{}{}
}

// Unregister removes a client; the project entry goes away with its last client.
func (h *Hub) Unregister(projectID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.subscribers[projectID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.subscribers, projectID)
		}
	}
}

// Subscribers returns how many clients listen on a project.
func (h *Hub) Subscribers(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[projectID])
}

// Publish sends evt to every subscriber of evt.ProjectID and returns how many
// clients accepted it. Failed sends are left to the ws handler to clean up.
func (h *Hub) Publish(evt Event) int {
	if h == nil {
		return 0
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return 0
	}

	h.mu.RLock()
	clients := make([]Client, 0, len(h.subscribers[evt.ProjectID]))
	for c := range h.subscribers[evt.ProjectID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if c.Send(payload) {
			delivered++
		}
	}
	return delivered
}

// Package sse implements the live-session registry backing in-app
// notification push. The registry is process-local: running multiple API
// instances splits it, and a session connected to one instance will not
// see pushes triggered on another. The persisted notification row is the
// durable fallback for that case.
package sse

import (
	"sync"
)

// Event is a server-push event delivered to a connected session.
type Event struct {
	EmployeeID string
	Event      string
	Data       interface{}
}

// Hub tracks which employees have live sessions and fans events out to
// them. It carries no business logic so it can be swapped for a
// pub/sub-backed registry without touching the notification service.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[chan Event]struct{}
}

// NewHub creates an empty session registry.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a session for an employee and returns its event
// channel plus a cleanup function that unregisters it. An employee may
// hold any number of concurrent sessions (multiple tabs).
func (h *Hub) Subscribe(employeeID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.sessions[employeeID] == nil {
		h.sessions[employeeID] = make(map[chan Event]struct{})
	}
	h.sessions[employeeID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.sessions[employeeID], ch)
		close(ch)
		if len(h.sessions[employeeID]) == 0 {
			delete(h.sessions, employeeID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every live session of the employee. Sends are
// non-blocking: a session whose buffer is full misses the event and is
// expected to catch up from the notification list.
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.sessions[employeeID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SessionCount returns the number of live sessions for an employee.
func (h *Hub) SessionCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.sessions[employeeID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSessions returns the number of live sessions across all employees.
func (h *Hub) TotalSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.sessions {
		total += len(subs)
	}
	return total
}

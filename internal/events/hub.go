// Package events is an in-process change feed: writes publish row-level
// events, per-user subscribers stream them to connected clients. Events carry
// the record id so consumers merge by id (insert-or-replace) instead of
// blindly appending.
package events

import (
	"sync"
)

type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
)

type ChangeEvent struct {
	Table    string      `json:"table"`
	Action   Action      `json:"action"`
	RecordID string      `json:"record_id"`
	Payload  interface{} `json:"payload,omitempty"`
}

type subscriber struct {
	userID string
	ch     chan ChangeEvent
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a listener for one user's change events. The returned
// channel is owned by the hub and closed by Unsubscribe or Close.
func (h *Hub) Subscribe(userID string) (<-chan ChangeEvent, func()) {
	sub := &subscriber{
		userID: userID,
		ch:     make(chan ChangeEvent, 16),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	return sub.ch, func() { h.unsubscribe(sub) }
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.ch)
}

// Publish fans out to the user's subscribers without blocking the writer:
// a subscriber that cannot keep up loses events rather than stalling the
// request that produced them.
func (h *Hub) Publish(userID string, event ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subscribers {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subscribers {
		close(sub.ch)
	}
	h.subscribers = make(map[*subscriber]struct{})
}

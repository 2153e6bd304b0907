// Package hub implements the in-process clipboard broker.
// The capture loop publishes clipboard updates; subscribers (the history
// recorder, IPC status handlers) receive events via channels. Sends to
// subscribers are non-blocking; a slow subscriber loses events rather than
// stalling the capture loop.
package hub

import (
	"log/slog"
	"sync"

	"go.klb.dev/clipvault/internal/message"
)

// Event is a clipboard update delivered to a subscriber.
type Event struct {
	Source string
	Items  []message.Item
}

// Hub fans clipboard updates out to all subscribers and remembers the most
// recent update.
type Hub struct {
	mu           sync.RWMutex
	subs         map[int]chan Event
	nextID       int
	latest       []message.Item
	latestSource string
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its event channel together
// with a cancel function. The channel is buffered; events are dropped when
// the buffer is full.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, 16)
	h.subs[id] = ch
	total := len(h.subs)
	h.mu.Unlock()

	slog.Debug("hub subscriber added", "id", id, "total", total)

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish stores items as the latest clipboard state and fans out to all
// subscribers.
func (h *Hub) Publish(items []message.Item, source string) {
	h.mu.Lock()
	h.latest = items
	h.latestSource = source
	targets := make([]chan Event, 0, len(h.subs))
	for _, ch := range h.subs {
		targets = append(targets, ch)
	}
	h.mu.Unlock()

	ev := Event{Source: source, Items: items}
	for _, ch := range targets {
		select {
		case ch <- ev:
		default:
			slog.Warn("hub subscriber channel full, dropping event")
		}
	}
}

// Latest returns the most recent items and their source.
func (h *Hub) Latest() ([]message.Item, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.latestSource
}

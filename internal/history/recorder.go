// Package history implements the clipboard capture loop: it watches the
// platform clipboard backend, publishes changes to the in-process hub, and
// persists text entries to the store.
package history

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"go.klb.dev/clipvault/internal/clip"
	"go.klb.dev/clipvault/internal/hub"
	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/store"
)

// Recorder owns the system clipboard on behalf of the daemon.
type Recorder struct {
	h          *hub.Hub
	backend    clip.Backend
	store      *store.Store
	source     string
	maxEntries int

	mu        sync.Mutex
	lastItems []message.Item
}

// New creates a recorder but does not start it. maxEntries of zero or less
// disables pruning.
func New(h *hub.Hub, backend clip.Backend, st *store.Store, source string, maxEntries int) *Recorder {
	return &Recorder{
		h:          h,
		backend:    backend,
		store:      st,
		source:     source,
		maxEntries: maxEntries,
	}
}

// Run watches the clipboard until ctx is cancelled. Call in a goroutine.
func (r *Recorder) Run(ctx context.Context) {
	slog.Info("clipboard recorder started", "backend", r.backend.Name())

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.backend.Watch():
			items, err := r.backend.Read()
			if err != nil {
				slog.Error("clipboard read failed", "err", err)
				continue
			}
			if len(items) == 0 {
				continue
			}

			r.Ingest(items)
		}
	}
}

// Ingest records a clipboard state: it publishes to the hub and persists the
// items, unless they are identical to the last recorded state. Called by the
// watch loop and by the IPC copy handler.
func (r *Recorder) Ingest(items []message.Item) {
	if len(items) == 0 {
		return
	}

	r.mu.Lock()
	if reflect.DeepEqual(items, r.lastItems) {
		r.mu.Unlock()
		return
	}
	r.lastItems = items
	r.mu.Unlock()

	hub.LogItems("clipboard changed", r.source, items)
	r.h.Publish(items, r.source)
	r.persist(items)
}

// CopyIn places items on the system clipboard and records them.
func (r *Recorder) CopyIn(items []message.Item) error {
	if err := r.backend.Write(items); err != nil {
		return err
	}
	r.Ingest(items)
	return nil
}

// Restore writes a stored entry back onto the system clipboard.
func (r *Recorder) Restore(e *store.Entry) error {
	var item message.Item
	switch e.Kind {
	case "image":
		// Image content is stored base64-encoded, which is already the wire
		// representation of an Item.
		item = message.Item{MIME: "image/png", Data: e.Content}
	default:
		item = message.NewTextItem(e.Content)
	}

	// Remember what we wrote so the watch loop doesn't re-record it.
	r.mu.Lock()
	r.lastItems = []message.Item{item}
	r.mu.Unlock()

	return r.backend.Write([]message.Item{item})
}

// persist stores each captured item and prunes the table to the configured cap.
func (r *Recorder) persist(items []message.Item) {
	for _, it := range items {
		var kind, content string
		switch it.MIME {
		case "text/plain":
			data, err := it.Decode()
			if err != nil {
				continue
			}
			kind, content = "text", string(data)
		case "image/png":
			kind, content = "image", it.Data
		default:
			continue
		}

		if _, err := r.store.Insert(kind, content); err != nil {
			slog.Error("history insert failed", "kind", kind, "err", err)
		}
	}

	if r.maxEntries > 0 {
		if n, err := r.store.Prune(r.maxEntries); err != nil {
			slog.Error("history prune failed", "err", err)
		} else if n > 0 {
			slog.Debug("history pruned", "removed", n)
		}
	}
}

package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.klb.dev/clipvault/internal/clip"
	"go.klb.dev/clipvault/internal/hub"
	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/store"
)

// fakeBackend is an in-memory clipboard for recorder tests.
type fakeBackend struct {
	mu      sync.Mutex
	items   []message.Item
	written int
	watch   chan struct{}
}

var _ clip.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{watch: make(chan struct{}, 1)}
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Read() ([]message.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, nil
}

func (f *fakeBackend) Write(items []message.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.written++
	return nil
}

func (f *fakeBackend) Watch() <-chan struct{} { return f.watch }
func (f *fakeBackend) Close()                 {}

func (f *fakeBackend) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

func newTestRecorder(t *testing.T, maxEntries int) (*Recorder, *fakeBackend, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	backend := newFakeBackend()
	return New(hub.New(), backend, st, "test", maxEntries), backend, st
}

func TestIngest(t *testing.T) {
	t.Run("persists text items", func(t *testing.T) {
		r, _, st := newTestRecorder(t, 0)
		r.Ingest([]message.Item{message.NewTextItem("hello")})

		entries, err := st.Recent(10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Kind != "text" || entries[0].Content != "hello" {
			t.Errorf("entry = %q/%q, want text/hello", entries[0].Kind, entries[0].Content)
		}
	})

	t.Run("suppresses identical consecutive states", func(t *testing.T) {
		r, _, _ := newTestRecorder(t, 0)
		h := r.h
		ch, cancel := h.Subscribe()
		defer cancel()

		items := []message.Item{message.NewTextItem("same")}
		r.Ingest(items)
		r.Ingest(items)

		<-ch
		select {
		case <-ch:
			t.Error("duplicate state was republished")
		default:
		}
	})

	t.Run("publishes to the hub", func(t *testing.T) {
		r, _, _ := newTestRecorder(t, 0)
		ch, cancel := r.h.Subscribe()
		defer cancel()

		r.Ingest([]message.Item{message.NewTextItem("published")})
		ev := <-ch
		if ev.Source != "test" {
			t.Errorf("source = %q, want test", ev.Source)
		}
	})

	t.Run("prunes to the configured cap", func(t *testing.T) {
		r, _, st := newTestRecorder(t, 2)
		for _, s := range []string{"a", "b", "c", "d"} {
			r.Ingest([]message.Item{message.NewTextItem(s)})
		}

		n, err := st.Count()
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 2 {
			t.Errorf("count = %d, want 2", n)
		}
	})

	t.Run("skips unknown mime types", func(t *testing.T) {
		r, _, st := newTestRecorder(t, 0)
		r.Ingest([]message.Item{{MIME: "application/octet-stream", Data: "AAAA"}})

		n, err := st.Count()
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Errorf("count = %d, want 0", n)
		}
	})
}

func TestCopyIn(t *testing.T) {
	r, backend, st := newTestRecorder(t, 0)

	items := []message.Item{message.NewTextItem("copied")}
	if err := r.CopyIn(items); err != nil {
		t.Fatalf("copy in: %v", err)
	}

	if backend.writes() != 1 {
		t.Errorf("backend writes = %d, want 1", backend.writes())
	}
	n, err := st.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestRestore(t *testing.T) {
	r, backend, st := newTestRecorder(t, 0)

	id, err := st.Insert("text", "stored")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	e, err := st.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := r.Restore(e); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if backend.writes() != 1 {
		t.Errorf("backend writes = %d, want 1", backend.writes())
	}

	// The restored state must not be re-recorded by a subsequent ingest.
	ch, cancel := r.h.Subscribe()
	defer cancel()
	r.Ingest([]message.Item{message.NewTextItem("stored")})
	select {
	case <-ch:
		t.Error("restored state was re-recorded")
	default:
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r, backend, st := newTestRecorder(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	backend.Write([]message.Item{message.NewTextItem("via watch")})
	backend.watch <- struct{}{}

	deadline := time.After(2 * time.Second)
	for {
		n, err := st.Count()
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("watch event never persisted")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

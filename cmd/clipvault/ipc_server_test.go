package main

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/clipvault/internal/clip"
	"go.klb.dev/clipvault/internal/history"
	"go.klb.dev/clipvault/internal/hub"
	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/store"
	"go.klb.dev/clipvault/internal/tray"
	"go.klb.dev/clipvault/internal/window"
)

// testBackend is an in-memory clipboard; the daemon handlers only need
// Write to succeed.
type testBackend struct {
	mu    sync.Mutex
	items []message.Item
}

var _ clip.Backend = (*testBackend)(nil)

func (b *testBackend) Name() string { return "test" }

func (b *testBackend) Read() ([]message.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items, nil
}

func (b *testBackend) Write(items []message.Item) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	return nil
}

func (b *testBackend) Watch() <-chan struct{} { return nil }
func (b *testBackend) Close()                 {}

func newTestDaemon(t *testing.T) (*daemon, *testBackend) {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	h := hub.New()
	backend := &testBackend{}

	windows := window.NewRegistry()
	windows.Add(window.NewHeadless(window.Main))

	d := &daemon{
		hub:       h,
		router:    tray.NewRouter(windows, func() {}),
		instance:  uuid.NewString(),
		startedAt: time.Now(),
	}
	d.st = st
	d.backend = backend
	d.rec = history.New(h, backend, st, "test", 0)
	return d, backend
}

func TestDispatch(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		d.st.Insert("text", "one")

		resp, quit := d.dispatch(&message.Message{Type: message.TypeStatus})
		if quit {
			t.Error("status must not quit the daemon")
		}
		if resp.Type != message.TypeStatusResponse {
			t.Fatalf("type = %q, want %q", resp.Type, message.TypeStatusResponse)
		}
		if resp.Status.Entries != 1 {
			t.Errorf("entries = %d, want 1", resp.Status.Entries)
		}
		if resp.Status.Backend != "test" {
			t.Errorf("backend = %q, want test", resp.Status.Backend)
		}
		if resp.Status.Instance != d.instance {
			t.Errorf("instance = %q, want %q", resp.Status.Instance, d.instance)
		}
	})

	t.Run("history respects limit", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		for _, s := range []string{"a", "b", "c"} {
			d.st.Insert("text", s)
		}

		resp, _ := d.dispatch(&message.Message{Type: message.TypeHistory, Limit: 2})
		if resp.Type != message.TypeHistoryResponse {
			t.Fatalf("type = %q, want %q", resp.Type, message.TypeHistoryResponse)
		}
		if len(resp.Entries) != 2 {
			t.Errorf("got %d entries, want 2", len(resp.Entries))
		}
	})

	t.Run("get known entry", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		id, _ := d.st.Insert("text", "wanted")

		resp, _ := d.dispatch(&message.Message{Type: message.TypeGet, ID: id})
		if resp.Type != message.TypeEntry {
			t.Fatalf("type = %q, want %q (%s)", resp.Type, message.TypeEntry, resp.Error)
		}
		if resp.Entries[0].Content != "wanted" {
			t.Errorf("content = %q, want wanted", resp.Entries[0].Content)
		}
	})

	t.Run("get unknown entry", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{Type: message.TypeGet, ID: 999})
		if resp.Type != message.TypeError {
			t.Errorf("type = %q, want %q", resp.Type, message.TypeError)
		}
	})

	t.Run("copy items sets clipboard and records", func(t *testing.T) {
		d, backend := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{
			Type:  message.TypeCopy,
			Items: []message.Item{message.NewTextItem("pasted")},
		})
		if resp.Type != message.TypeOK {
			t.Fatalf("type = %q, want OK (%s)", resp.Type, resp.Error)
		}

		items, _ := backend.Read()
		if len(items) != 1 || items[0].MIME != "text/plain" {
			t.Errorf("backend items = %+v, want one text item", items)
		}
		if n, _ := d.st.Count(); n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
	})

	t.Run("copy by id restores onto clipboard", func(t *testing.T) {
		d, backend := newTestDaemon(t)
		id, _ := d.st.Insert("text", "older entry")

		resp, _ := d.dispatch(&message.Message{Type: message.TypeCopy, ID: id})
		if resp.Type != message.TypeOK {
			t.Fatalf("type = %q, want OK (%s)", resp.Type, resp.Error)
		}

		items, _ := backend.Read()
		if len(items) != 1 {
			t.Fatalf("backend items = %+v, want one item", items)
		}
		b, _ := items[0].Decode()
		if string(b) != "older entry" {
			t.Errorf("restored = %q, want older entry", b)
		}
	})

	t.Run("copy with nothing to copy", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{Type: message.TypeCopy})
		if resp.Type != message.TypeError {
			t.Errorf("type = %q, want %q", resp.Type, message.TypeError)
		}
	})

	t.Run("pin and unpin an entry", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		id, _ := d.st.Insert("text", "important")

		resp, _ := d.dispatch(&message.Message{Type: message.TypePin, ID: id, Pinned: true})
		if resp.Type != message.TypeOK {
			t.Fatalf("pin: type = %q, want OK (%s)", resp.Type, resp.Error)
		}
		e, _ := d.st.Get(id)
		if !e.Pinned {
			t.Error("entry not pinned after PIN request")
		}

		resp, _ = d.dispatch(&message.Message{Type: message.TypePin, ID: id})
		if resp.Type != message.TypeOK {
			t.Fatalf("unpin: type = %q, want OK (%s)", resp.Type, resp.Error)
		}
		e, _ = d.st.Get(id)
		if e.Pinned {
			t.Error("entry still pinned after unpin request")
		}
	})

	t.Run("pin unknown entry", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{Type: message.TypePin, ID: 404, Pinned: true})
		if resp.Type != message.TypeError {
			t.Errorf("type = %q, want %q", resp.Type, message.TypeError)
		}
	})

	t.Run("pinned entry survives clear", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		keep, _ := d.st.Insert("text", "keep")
		d.st.Insert("text", "drop")

		if resp, _ := d.dispatch(&message.Message{Type: message.TypePin, ID: keep, Pinned: true}); resp.Type != message.TypeOK {
			t.Fatalf("pin: %s", resp.Error)
		}
		if resp, _ := d.dispatch(&message.Message{Type: message.TypeClear}); resp.Type != message.TypeOK {
			t.Fatalf("clear: %s", resp.Error)
		}
		if _, err := d.st.Get(keep); err != nil {
			t.Errorf("pinned entry removed by clear: %v", err)
		}
	})

	t.Run("clear reports removed count", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		id, _ := d.st.Insert("text", "keep")
		d.st.Insert("text", "drop")
		d.st.SetPinned(id, true)

		resp, _ := d.dispatch(&message.Message{Type: message.TypeClear})
		if resp.Type != message.TypeOK {
			t.Fatalf("type = %q, want OK (%s)", resp.Type, resp.Error)
		}
		if resp.Count != 1 {
			t.Errorf("count = %d, want 1", resp.Count)
		}
		if n, _ := d.st.Count(); n != 1 {
			t.Errorf("remaining = %d, want 1 (pinned survives)", n)
		}
	})

	t.Run("show makes the window visible", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{Type: message.TypeShow})
		if resp.Type != message.TypeOK {
			t.Fatalf("type = %q, want OK", resp.Type)
		}
	})

	t.Run("quit asks the caller to stop", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, quit := d.dispatch(&message.Message{Type: message.TypeQuit})
		if resp.Type != message.TypeOK {
			t.Errorf("type = %q, want OK", resp.Type)
		}
		if !quit {
			t.Error("quit flag not set")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		d, _ := newTestDaemon(t)
		resp, _ := d.dispatch(&message.Message{Type: "BOGUS"})
		if resp.Type != message.TypeError {
			t.Errorf("type = %q, want %q", resp.Type, message.TypeError)
		}
	})

	t.Run("handlers before startup", func(t *testing.T) {
		d := &daemon{hub: hub.New()}
		for _, typ := range []message.Type{message.TypeStatus, message.TypeHistory, message.TypeGet, message.TypeCopy, message.TypePin, message.TypeClear} {
			resp, _ := d.dispatch(&message.Message{Type: typ})
			if resp.Type != message.TypeError {
				t.Errorf("%s before startup: type = %q, want %q", typ, resp.Type, message.TypeError)
			}
		}
	})
}

func TestPreview(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		e := message.Entry{Kind: "text", Content: "  multi\n  line\tcontent  "}
		if got := preview(e); got != "multi line content" {
			t.Errorf("preview = %q", got)
		}
	})

	t.Run("truncates long content", func(t *testing.T) {
		e := message.Entry{Kind: "text", Content: strings.Repeat("x", 200)}
		got := preview(e)
		if !strings.HasSuffix(got, "…") {
			t.Errorf("preview = %q, want ellipsis suffix", got)
		}
		if len([]rune(got)) > previewWidth+1 {
			t.Errorf("preview is %d runes, want at most %d", len([]rune(got)), previewWidth+1)
		}
	})

	t.Run("non-text entries show a placeholder", func(t *testing.T) {
		e := message.Entry{Kind: "image", Content: "abcd"}
		if got := preview(e); got != "<image, 4 bytes>" {
			t.Errorf("preview = %q", got)
		}
	})
}

func TestFmtAge(t *testing.T) {
	now := time.Now()
	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-5 * time.Second), "5s ago"},
		{now.Add(-3 * time.Minute), "3m ago"},
		{now.Add(-2 * time.Hour), "2h ago"},
	}
	for _, tc := range cases {
		if got := fmtAge(tc.t); got != tc.want {
			t.Errorf("fmtAge(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}

	old := now.Add(-72 * time.Hour)
	if got := fmtAge(old); got != old.Format("2006-01-02") {
		t.Errorf("fmtAge(old) = %q, want date", got)
	}
}

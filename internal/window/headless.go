package window

import "sync"

// Headless is a stand-in window for builds without a compositor. It tracks
// visibility state so that show/hide semantics stay observable, and every
// manipulation succeeds.
type Headless struct {
	name string

	mu      sync.Mutex
	visible bool
}

// NewHeadless returns a hidden headless window with the given name.
func NewHeadless(name string) *Headless {
	return &Headless{name: name}
}

func (h *Headless) Name() string { return h.name }

func (h *Headless) Center() error { return nil }

func (h *Headless) Show() error {
	h.mu.Lock()
	h.visible = true
	h.mu.Unlock()
	return nil
}

func (h *Headless) Focus() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible = true
	return nil
}

func (h *Headless) Hide() error {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
	return nil
}

func (h *Headless) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Package window models the named top-level windows owned by the runtime.
//
// The daemon itself renders nothing; a window here is a handle some frontend
// (or the headless placeholder) registers under a well-known name. Handles
// are looked up by name on every event rather than cached, so a frontend can
// re-register a fresh handle at any time without stale-reference bookkeeping.
package window

import "sync"

// Main is the name of the application's main window.
const Main = "main"

// Window is a single top-level window. All manipulation is best-effort: a
// call may fail if the underlying handle has gone stale.
type Window interface {
	Name() string
	Center() error
	Show() error
	Focus() error
	Hide() error
	Visible() bool
}

// Registry maps window names to live handles.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]Window
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]Window)}
}

// Add registers w under its name, replacing any previous handle.
func (r *Registry) Add(w Window) {
	r.mu.Lock()
	r.windows[w.Name()] = w
	r.mu.Unlock()
}

// Remove drops the handle registered under name, if any.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.windows, name)
	r.mu.Unlock()
}

// Get looks up a window by name.
func (r *Registry) Get(name string) (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[name]
	return w, ok
}

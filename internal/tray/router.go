// Package tray provides the system tray icon and the router that translates
// tray interactions into window-visibility actions or process exit.
package tray

import (
	"log/slog"

	"go.klb.dev/clipvault/internal/window"
)

// Event is a tray interaction delivered by the platform frontend. Using a
// closed type instead of raw menu-id strings keeps dispatch exhaustive at
// compile time.
type Event int

const (
	// EventNone is any interaction the router doesn't act on.
	EventNone Event = iota
	// EventLeftClick is a left-click on the tray icon itself, on platforms
	// that report it.
	EventLeftClick
	// EventShow is the "Show Clipboard Manager" menu item.
	EventShow
	// EventQuit is the "Quit" menu item.
	EventQuit
)

// Menu item identifiers and labels.
const (
	MenuShowID    = "show"
	MenuQuitID    = "quit"
	MenuShowLabel = "Show Clipboard Manager"
	MenuQuitLabel = "Quit"
)

// EventForMenuID maps a menu item id onto an Event.
func EventForMenuID(id string) Event {
	switch id {
	case MenuShowID:
		return EventShow
	case MenuQuitID:
		return EventQuit
	default:
		return EventNone
	}
}

// Router is the stateless dispatcher for tray events. It owns no window
// handles; the main window is looked up by name on every event.
type Router struct {
	windows *window.Registry
	quit    func()
}

// NewRouter returns a router over the given registry. quit is invoked when
// the user selects the quit menu item.
func NewRouter(windows *window.Registry, quit func()) *Router {
	return &Router{windows: windows, quit: quit}
}

// Handle dispatches one tray event. Unknown events are no-ops.
func (r *Router) Handle(ev Event) {
	switch ev {
	case EventLeftClick, EventShow:
		r.showMain()
	case EventQuit:
		slog.Info("quit requested from tray")
		r.quit()
	}
}

// showMain centers, shows, and focuses the main window. If the window is not
// registered nothing happens, and failures on a stale handle are discarded.
func (r *Router) showMain() {
	w, ok := r.windows.Get(window.Main)
	if !ok {
		return
	}
	_ = w.Center()
	_ = w.Show()
	_ = w.Focus()
}

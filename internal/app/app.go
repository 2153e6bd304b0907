// Package app is the application runtime: it owns the ordered plugin list,
// the window registry, and the blocking run loop the daemon lives in.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.klb.dev/clipvault/internal/window"
)

// Plugin is a capability module (persistence, clipboard, hotkeys, opener)
// registered with the runtime at startup. Start is called once, in
// registration order; Stop in reverse order at shutdown.
type Plugin interface {
	Name() string
	Start(ctx context.Context, a *App) error
	Stop() error
}

// App is the explicitly-constructed application context. One instance is
// built at process start and handed to Run; there are no ambient singletons.
type App struct {
	windows *window.Registry

	mu      sync.Mutex
	plugins []Plugin

	quitOnce sync.Once
	quitCh   chan struct{}
}

// New returns an App with an empty plugin list and window registry.
func New() *App {
	return &App{
		windows: window.NewRegistry(),
		quitCh:  make(chan struct{}),
	}
}

// Windows returns the runtime's window registry.
func (a *App) Windows() *window.Registry { return a.windows }

// Register appends a plugin. Call before Run; registration after the run
// loop has started is not supported.
func (a *App) Register(p Plugin) {
	a.mu.Lock()
	a.plugins = append(a.plugins, p)
	a.mu.Unlock()
}

// Quit initiates an orderly shutdown of the run loop. Safe to call from any
// goroutine, any number of times.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quitCh) })
}

// Done is closed once Quit has been called.
func (a *App) Done() <-chan struct{} { return a.quitCh }

// Run starts every registered plugin in order, then blocks until Quit is
// called or ctx is cancelled. A plugin failing to start is a fatal startup
// condition: already-started plugins are stopped and the error is returned.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	plugins := make([]Plugin, len(a.plugins))
	copy(plugins, a.plugins)
	a.mu.Unlock()

	var started []Plugin
	for _, p := range plugins {
		if err := p.Start(ctx, a); err != nil {
			stopAll(started)
			return fmt.Errorf("start plugin %s: %w", p.Name(), err)
		}
		slog.Debug("plugin started", "plugin", p.Name())
		started = append(started, p)
	}

	select {
	case <-ctx.Done():
	case <-a.quitCh:
	}

	stopAll(started)
	return nil
}

// stopAll stops plugins in reverse start order, logging failures.
func stopAll(plugins []Plugin) {
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Stop(); err != nil {
			slog.Warn("plugin stop failed", "plugin", p.Name(), "err", err)
		} else {
			slog.Debug("plugin stopped", "plugin", p.Name())
		}
	}
}

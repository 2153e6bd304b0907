package main

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"

	"go.klb.dev/clipvault/internal/app"
	"go.klb.dev/clipvault/internal/clip"
	"go.klb.dev/clipvault/internal/history"
	"go.klb.dev/clipvault/internal/hotkey"
	"go.klb.dev/clipvault/internal/hub"
	"go.klb.dev/clipvault/internal/store"
	"go.klb.dev/clipvault/internal/tray"
)

// daemon wires the capability plugins together and backs the IPC handlers.
// Fields guarded by mu are nil until the owning plugin has started.
type daemon struct {
	v         *viper.Viper
	app       *app.App
	hub       *hub.Hub
	router    *tray.Router
	instance  string
	startedAt time.Time
	trayOn    bool

	mu        sync.RWMutex
	st        *store.Store
	backend   clip.Backend
	rec       *history.Recorder
	recCancel context.CancelFunc
	hotkeys   hotkey.Manager
}

func (d *daemon) store() *store.Store {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.st
}

func (d *daemon) recorder() *history.Recorder {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rec
}

func (d *daemon) backendName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.backend == nil {
		return "none"
	}
	return d.backend.Name()
}

// sqlPlugin opens the history database and applies pending migrations.
type sqlPlugin struct {
	d *daemon
}

func (p *sqlPlugin) Name() string { return "sql" }

func (p *sqlPlugin) Start(_ context.Context, _ *app.App) error {
	dataDir := p.d.v.GetString("data-dir")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	path := store.ResolvePath(p.d.v.GetString("db"), dataDir)
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	slog.Info("history database ready", "path", path)

	p.d.mu.Lock()
	p.d.st = st
	p.d.mu.Unlock()
	return nil
}

func (p *sqlPlugin) Stop() error {
	p.d.mu.Lock()
	st := p.d.st
	p.d.st = nil
	p.d.mu.Unlock()
	if st == nil {
		return nil
	}
	return st.Close()
}

// clipboardPlugin owns the platform clipboard backend and the capture loop.
type clipboardPlugin struct {
	d *daemon
}

func (p *clipboardPlugin) Name() string { return "clipboard" }

func (p *clipboardPlugin) Start(ctx context.Context, _ *app.App) error {
	backend := clip.New()
	rec := history.New(
		p.d.hub,
		backend,
		p.d.store(),
		p.d.v.GetString("source"),
		p.d.v.GetInt("max-entries"),
	)

	recCtx, cancel := context.WithCancel(ctx)
	go rec.Run(recCtx)

	p.d.mu.Lock()
	p.d.backend = backend
	p.d.rec = rec
	p.d.recCancel = cancel
	p.d.mu.Unlock()
	return nil
}

func (p *clipboardPlugin) Stop() error {
	p.d.mu.Lock()
	backend, cancel := p.d.backend, p.d.recCancel
	p.d.backend, p.d.rec, p.d.recCancel = nil, nil, nil
	p.d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if backend != nil {
		backend.Close()
	}
	return nil
}

// hotkeyPlugin binds the configured accelerator to the show-window action.
type hotkeyPlugin struct {
	d *daemon
}

func (p *hotkeyPlugin) Name() string { return "global-shortcut" }

func (p *hotkeyPlugin) Start(_ context.Context, _ *app.App) error {
	mgr := hotkey.New()

	if accel := p.d.v.GetString("hotkey"); accel != "" {
		router := p.d.router
		if err := mgr.Register(accel, func() {
			router.Handle(tray.EventShow)
		}); err != nil {
			// Common on headless systems; the daemon still records history.
			slog.Warn("global hotkey unavailable", "accel", accel, "err", err)
		} else {
			slog.Info("global hotkey registered", "accel", accel)
		}
	}

	p.d.mu.Lock()
	p.d.hotkeys = mgr
	p.d.mu.Unlock()
	return nil
}

func (p *hotkeyPlugin) Stop() error {
	p.d.mu.Lock()
	mgr := p.d.hotkeys
	p.d.hotkeys = nil
	p.d.mu.Unlock()
	if mgr == nil {
		return nil
	}
	return mgr.Close()
}

// openerPlugin checks that a platform open handler exists so that "open"
// failures surface at startup rather than on first use.
type openerPlugin struct{}

func (*openerPlugin) Name() string { return "opener" }

func (*openerPlugin) Start(_ context.Context, _ *app.App) error {
	if runtime.GOOS == "linux" {
		if _, err := exec.LookPath("xdg-open"); err != nil {
			slog.Warn("xdg-open not found; \"clipvault open\" will not work")
		}
	}
	return nil
}

func (*openerPlugin) Stop() error { return nil }

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipvault/internal/app"
	"go.klb.dev/clipvault/internal/hub"
	"go.klb.dev/clipvault/internal/ipc"
	"go.klb.dev/clipvault/internal/tray"
	"go.klb.dev/clipvault/internal/window"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard history daemon",
		Long: `Starts the clipvault daemon: clipboard capture, SQLite history storage,
the global hotkey, and (where supported) the system tray icon.

The daemon blocks until the tray "Quit" item is selected or the process
receives SIGINT/SIGTERM.

Config file search order:
  /etc/clipvault/clipvault.toml
  $HOME/.config/clipvault/clipvault.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPVAULT_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.String("db", "sqlite:clipboard.db", "history database DSN (relative paths land in --data-dir)")
	f.String("data-dir", defaultDataDir(), "directory for the history database")
	f.Int("max-entries", 500, "cap on stored history entries (0 = unlimited)")
	f.String("hotkey", "ctrl+shift+v", "global accelerator that shows the manager window (empty = disabled)")
	f.Bool("tray", true, "show the system tray icon")
	f.String("source", defaultSource(), "name recorded as the origin of captured entries")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	a := app.New()
	a.Windows().Add(window.NewHeadless(window.Main))

	d := &daemon{
		v:         v,
		app:       a,
		hub:       hub.New(),
		instance:  uuid.NewString(),
		startedAt: time.Now().UTC(),
		trayOn:    v.GetBool("tray") && tray.Supported(),
	}
	d.router = tray.NewRouter(a.Windows(), a.Quit)

	// Fixed registration order; the tray (when enabled) is constructed before
	// the run loop starts, below.
	a.Register(&sqlPlugin{d: d})
	a.Register(&clipboardPlugin{d: d})
	a.Register(&hotkeyPlugin{d: d})
	a.Register(&openerPlugin{})

	slog.Info("clipvault starting",
		"version", Version,
		"instance", d.instance,
		"db", v.GetString("db"),
		"tray", d.trayOn,
		"hotkey", v.GetString("hotkey"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// IPC socket for the history/copy/open/clear/status CLI tools.
	if ln, err := ipc.Listen(); err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		defer ln.Close()
		go d.serveIPC(ln)
	}

	if !d.trayOn {
		return a.Run(ctx)
	}

	// The tray loop must own the main goroutine on some platforms, so the
	// runtime's run loop moves to a goroutine. Either side ending takes the
	// other down with it.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(runCtx)
		cancel()
	}()

	tray.Run(runCtx, d.router)
	a.Quit()
	return <-errCh
}

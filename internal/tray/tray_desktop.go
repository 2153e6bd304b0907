//go:build linux || darwin || windows

package tray

import (
	"context"

	"github.com/getlantern/systray"
)

// Run starts the system tray and blocks until the tray is torn down, either
// by the quit menu item or by ctx cancellation. Call from the main goroutine;
// some platforms require the tray loop to own it.
func Run(ctx context.Context, router *Router) {
	systray.Run(func() {
		systray.SetTitle("Clipvault")
		systray.SetTooltip("Clipboard history, running in the background")

		mShow := systray.AddMenuItem(MenuShowLabel, "Show the clipboard manager window")
		mQuit := systray.AddMenuItem(MenuQuitLabel, "Quit clipvault")

		go func() {
			for {
				select {
				case <-ctx.Done():
					systray.Quit()
					return
				case <-mShow.ClickedCh:
					router.Handle(EventForMenuID(MenuShowID))
				case <-mQuit.ClickedCh:
					router.Handle(EventForMenuID(MenuQuitID))
					systray.Quit()
					return
				}
			}
		}()
	}, nil)
}

// Supported reports whether this build carries a real tray frontend.
func Supported() bool { return true }

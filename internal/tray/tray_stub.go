//go:build !linux && !darwin && !windows

package tray

import "context"

// Run blocks until ctx is cancelled. No tray is available on this platform;
// present to satisfy cross-platform builds.
func Run(ctx context.Context, _ *Router) {
	<-ctx.Done()
}

// Supported reports whether this build carries a real tray frontend.
func Supported() bool { return false }

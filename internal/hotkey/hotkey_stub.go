//go:build !linux && !darwin && !windows

package hotkey

// noopManager satisfies Manager on platforms without global hotkey support.
type noopManager struct{}

// New returns a no-op manager on platforms without global hotkey support.
func New() Manager { return noopManager{} }

func (noopManager) Register(string, func()) error { return nil }
func (noopManager) Unregister(string) error       { return nil }
func (noopManager) Close() error                  { return nil }

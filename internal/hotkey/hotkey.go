// Package hotkey registers OS-global keyboard shortcuts. Accelerators are
// written as "+"-separated strings such as "ctrl+shift+v"; the final token
// is the key, everything before it a modifier.
//
// The real implementation (golang.design/x/hotkey) is selected on desktop
// platforms; other builds get a no-op manager.
package hotkey

// Manager registers and unregisters global hotkeys.
type Manager interface {
	// Register binds accel to callback. The callback fires on key-down,
	// asynchronously to the caller.
	Register(accel string, callback func()) error

	// Unregister removes a previously registered accelerator.
	Unregister(accel string) error

	// Close unregisters everything and releases platform resources.
	Close() error
}

// Package ipc provides the local control socket used by CLI sub-commands
// (history, status, open, clear) to talk to a running clipvault daemon.
//
// The channel carries newline-delimited JSON messages (internal/message
// framed by internal/wire). On unix-like systems it is a Unix domain socket;
// on Windows it is a named pipe.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate path for the IPC socket.
//
//   - Linux:   $XDG_RUNTIME_DIR/clipvault.sock  (override with $CLIPVAULT_SOCKET)
//   - macOS:   $TMPDIR/clipvault.sock
//   - Windows: \\.\pipe\clipvault
func SocketPath() string {
	if s := os.Getenv("CLIPVAULT_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a clipvault daemon appears to be listening on the
// IPC socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := dialIPC(SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the IPC socket path, removing
// any stale socket file first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous (crashed) run.
	_ = os.Remove(path)
	return listenIPC(path)
}

// Dial connects to a running daemon's IPC socket.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}

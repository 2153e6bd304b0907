package main

import (
	"fmt"
	"time"

	"go.klb.dev/clipvault/internal/ipc"
	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/wire"
)

const requestTimeout = 5 * time.Second

// request sends one message to the running daemon over the IPC socket and
// returns the reply. ERROR replies come back as Go errors.
func request(msg *message.Message) (*message.Message, error) {
	if !ipc.IsRunning() {
		return nil, fmt.Errorf("no clipvault daemon is running (socket %s); start one with \"clipvault run\"", ipc.SocketPath())
	}

	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", ipc.SocketPath(), err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.WriteMsg(msg); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	wc.SetReadDeadline(requestTimeout)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, fmt.Errorf("%s", resp.Error)
	}
	return resp, nil
}

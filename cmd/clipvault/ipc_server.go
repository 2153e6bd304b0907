package main

import (
	"log/slog"
	"net"

	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/store"
	"go.klb.dev/clipvault/internal/tray"
	"go.klb.dev/clipvault/internal/wire"
)

const defaultHistoryLimit = 20

func (d *daemon) serveIPC(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go d.handleIPCConn(conn)
	}
}

func (d *daemon) handleIPCConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)

	msg, err := wc.ReadMsg()
	if err != nil {
		return
	}

	resp, quit := d.dispatch(msg)
	if err := wc.WriteMsg(resp); err != nil {
		slog.Debug("ipc write failed", "err", err)
	}
	if quit {
		d.app.Quit()
	}
}

// dispatch handles one IPC request. The second return value asks the caller
// to quit the daemon after the response has been written.
func (d *daemon) dispatch(msg *message.Message) (*message.Message, bool) {
	switch msg.Type {
	case message.TypeStatus:
		return d.handleStatus(), false

	case message.TypeHistory:
		return d.handleHistory(msg.Limit), false

	case message.TypeGet:
		return d.handleGet(msg.ID), false

	case message.TypeCopy:
		return d.handleCopy(msg), false

	case message.TypePin:
		return d.handlePin(msg.ID, msg.Pinned), false

	case message.TypeClear:
		return d.handleClear(), false

	case message.TypeShow:
		d.router.Handle(tray.EventShow)
		return &message.Message{Type: message.TypeOK}, false

	case message.TypeQuit:
		slog.Info("quit requested over ipc")
		return &message.Message{Type: message.TypeOK}, true

	default:
		return message.Errorf("unknown request type %q", msg.Type), false
	}
}

func (d *daemon) handleStatus() *message.Message {
	st := d.store()
	if st == nil {
		return message.Errorf("daemon still starting up")
	}

	count, err := st.Count()
	if err != nil {
		return message.Errorf("count entries: %v", err)
	}

	latest, _ := d.hub.Latest()
	types := make([]string, len(latest))
	for i, it := range latest {
		types[i] = it.MIME
	}

	return &message.Message{
		Type: message.TypeStatusResponse,
		Status: &message.StatusInfo{
			Instance:    d.instance,
			Version:     Version,
			Backend:     d.backendName(),
			Database:    st.Path(),
			Entries:     count,
			Tray:        d.trayOn,
			StartedAt:   d.startedAt,
			LatestTypes: types,
		},
	}
}

func (d *daemon) handleHistory(limit int) *message.Message {
	st := d.store()
	if st == nil {
		return message.Errorf("daemon still starting up")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := st.Recent(limit)
	if err != nil {
		return message.Errorf("list history: %v", err)
	}

	resp := &message.Message{Type: message.TypeHistoryResponse}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toWireEntry(e))
	}
	return resp
}

func (d *daemon) handleGet(id int64) *message.Message {
	st := d.store()
	if st == nil {
		return message.Errorf("daemon still starting up")
	}

	e, err := st.Get(id)
	if err != nil {
		return message.Errorf("%v", err)
	}
	return &message.Message{
		Type:    message.TypeEntry,
		Entries: []message.Entry{toWireEntry(*e)},
	}
}

func (d *daemon) handleCopy(msg *message.Message) *message.Message {
	rec := d.recorder()
	if rec == nil {
		return message.Errorf("daemon still starting up")
	}

	if msg.ID != 0 {
		st := d.store()
		if st == nil {
			return message.Errorf("daemon still starting up")
		}
		e, err := st.Get(msg.ID)
		if err != nil {
			return message.Errorf("%v", err)
		}
		if err := rec.Restore(e); err != nil {
			return message.Errorf("restore entry %d: %v", msg.ID, err)
		}
		return &message.Message{Type: message.TypeOK}
	}

	if len(msg.Items) == 0 {
		return message.Errorf("copy request carries neither an id nor items")
	}
	if err := rec.CopyIn(msg.Items); err != nil {
		return message.Errorf("copy: %v", err)
	}
	return &message.Message{Type: message.TypeOK}
}

func (d *daemon) handlePin(id int64, pinned bool) *message.Message {
	st := d.store()
	if st == nil {
		return message.Errorf("daemon still starting up")
	}

	if err := st.SetPinned(id, pinned); err != nil {
		return message.Errorf("%v", err)
	}
	return &message.Message{Type: message.TypeOK}
}

func (d *daemon) handleClear() *message.Message {
	st := d.store()
	if st == nil {
		return message.Errorf("daemon still starting up")
	}

	n, err := st.Clear()
	if err != nil {
		return message.Errorf("clear history: %v", err)
	}
	slog.Info("history cleared over ipc", "removed", n)
	return &message.Message{Type: message.TypeOK, Count: n}
}

func toWireEntry(e store.Entry) message.Entry {
	return message.Entry{
		ID:        e.ID,
		Kind:      e.Kind,
		Content:   e.Content,
		Pinned:    e.Pinned,
		CreatedAt: e.CreatedAt,
	}
}

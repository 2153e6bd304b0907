// Package message defines the clipvault IPC protocol.
//
// All messages are newline-delimited JSON. Payloads are always base64-encoded
// so that binary content (images, etc.) is safe to embed in JSON strings.
// Each message is exactly one line: <json>\n
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	// Requests sent by CLI tools to the daemon.
	TypeStatus  Type = "STATUS"
	TypeHistory Type = "HISTORY"
	TypeGet     Type = "GET"
	TypeCopy    Type = "COPY"
	TypePin     Type = "PIN"
	TypeClear   Type = "CLEAR"
	TypeShow    Type = "SHOW"
	TypeQuit    Type = "QUIT"

	// Responses sent by the daemon.
	TypeStatusResponse  Type = "STATUS_RESPONSE"
	TypeHistoryResponse Type = "HISTORY_RESPONSE"
	TypeEntry           Type = "ENTRY"
	TypeOK              Type = "OK"
	TypeError           Type = "ERROR"
)

// Item is a single clipboard representation with a MIME type.
// Data is always base64-encoded.
type Item struct {
	MIME string `json:"mime"`
	Data string `json:"data"` // base64-encoded
}

// NewTextItem creates a text/plain Item from a plain string.
func NewTextItem(text string) Item {
	return Item{
		MIME: "text/plain",
		Data: base64.StdEncoding.EncodeToString([]byte(text)),
	}
}

// NewBinaryItem creates an Item from raw bytes with the given MIME type.
func NewBinaryItem(mime string, data []byte) Item {
	return Item{
		MIME: mime,
		Data: base64.StdEncoding.EncodeToString(data),
	}
}

// Decode returns the raw bytes of the item payload.
func (it Item) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(it.Data)
}

// Entry is one stored clipboard-history row as reported over IPC.
type Entry struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusInfo carries daemon metadata for STATUS_RESPONSE.
type StatusInfo struct {
	Instance    string    `json:"instance"`
	Version     string    `json:"version"`
	Backend     string    `json:"backend"`
	Database    string    `json:"database"`
	Entries     int64     `json:"entries"`
	Tray        bool      `json:"tray"`
	StartedAt   time.Time `json:"started_at"`
	LatestTypes []string  `json:"latest_types,omitempty"`
}

// Message is the top-level IPC envelope.
type Message struct {
	Type Type `json:"type"`

	// HISTORY: maximum number of entries to return (0 = server default).
	Limit int `json:"limit,omitempty"`

	// GET / COPY / PIN: entry id to fetch, restore, or pin. A COPY with ID
	// zero carries the clipboard contents to set in Items instead.
	ID int64 `json:"id,omitempty"`

	// PIN: desired pinned state. Absent means unpin.
	Pinned bool `json:"pinned,omitempty"`

	// HISTORY_RESPONSE / ENTRY
	Entries []Entry `json:"entries,omitempty"`

	// STATUS_RESPONSE
	Status *StatusInfo `json:"status,omitempty"`
	Items  []Item      `json:"items,omitempty"` // latest clipboard contents

	// OK: number of rows affected, for CLEAR.
	Count int64 `json:"count,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// Errorf builds an ERROR message.
func Errorf(format string, args ...any) *Message {
	return &Message{Type: TypeError, Error: fmt.Sprintf(format, args...)}
}

// TextPayload returns the decoded content of the first text/plain item, or "".
func (m *Message) TextPayload() string {
	for _, it := range m.Items {
		if it.MIME == "text/plain" {
			b, err := it.Decode()
			if err != nil {
				return ""
			}
			return string(b)
		}
	}
	return ""
}

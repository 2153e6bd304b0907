package message

import (
	"strings"
	"testing"
)

func TestItems(t *testing.T) {
	t.Run("text round trip", func(t *testing.T) {
		it := NewTextItem("hello world")
		if it.MIME != "text/plain" {
			t.Errorf("mime = %q, want text/plain", it.MIME)
		}
		b, err := it.Decode()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(b) != "hello world" {
			t.Errorf("decoded = %q, want hello world", b)
		}
	})

	t.Run("binary round trip", func(t *testing.T) {
		raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
		it := NewBinaryItem("image/png", raw)
		b, err := it.Decode()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(b) != string(raw) {
			t.Errorf("decoded = %x, want %x", b, raw)
		}
	})

	t.Run("invalid base64 is an error", func(t *testing.T) {
		it := Item{MIME: "text/plain", Data: "not base64!"}
		if _, err := it.Decode(); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	t.Run("envelope round trip", func(t *testing.T) {
		m := &Message{
			Type:  TypeCopy,
			Items: []Item{NewTextItem("payload")},
		}
		b, err := m.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		got, err := Decode(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Type != TypeCopy {
			t.Errorf("type = %q, want %q", got.Type, TypeCopy)
		}
		if got.TextPayload() != "payload" {
			t.Errorf("payload = %q, want payload", got.TextPayload())
		}
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		if _, err := Decode([]byte("{not json")); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestErrorf(t *testing.T) {
	m := Errorf("entry %d not found", 42)
	if m.Type != TypeError {
		t.Errorf("type = %q, want %q", m.Type, TypeError)
	}
	if !strings.Contains(m.Error, "42") {
		t.Errorf("error = %q, want it to mention the id", m.Error)
	}
}

func TestTextPayload(t *testing.T) {
	t.Run("first text item wins", func(t *testing.T) {
		m := &Message{Items: []Item{
			NewBinaryItem("image/png", []byte{1, 2, 3}),
			NewTextItem("text"),
		}}
		if got := m.TextPayload(); got != "text" {
			t.Errorf("payload = %q, want text", got)
		}
	})

	t.Run("no text item yields empty", func(t *testing.T) {
		m := &Message{Items: []Item{NewBinaryItem("image/png", nil)}}
		if got := m.TextPayload(); got != "" {
			t.Errorf("payload = %q, want empty", got)
		}
	})
}

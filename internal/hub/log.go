package hub

import (
	"context"
	"log/slog"

	"go.klb.dev/clipvault/internal/message"
)

// LogItems logs a clipboard event at INFO (source, mime types) and DEBUG
// (text preview up to 120 chars, or byte size for binary items).
func LogItems(event, source string, items []message.Item) {
	mimes := make([]string, len(items))
	for i, it := range items {
		mimes[i] = it.MIME
	}
	slog.Info(event, "source", source, "types", mimes)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, it := range items {
		data, err := it.Decode()
		if err != nil {
			continue
		}
		if it.MIME == "text/plain" {
			preview := string(data)
			if len(preview) > 120 {
				preview = preview[:120] + "…"
			}
			slog.Debug("clipboard item", "mime", it.MIME, "preview", preview)
		} else {
			slog.Debug("clipboard item", "mime", it.MIME, "size_bytes", len(data))
		}
	}
}

//go:build darwin || windows || linux

package clip

import (
	"fmt"

	"golang.design/x/clipboard"

	"go.klb.dev/clipvault/internal/message"
)

// readItems snapshots the system clipboard into typed items.
// Shared by all desktop backends.
func readItems() ([]Item, error) {
	var items []Item
	if text := clipboard.Read(clipboard.FmtText); text != nil {
		items = append(items, message.NewTextItem(string(text)))
	}
	if img := clipboard.Read(clipboard.FmtImage); img != nil {
		items = append(items, message.NewBinaryItem("image/png", img))
	}
	return items, nil
}

// writeItems replaces the system clipboard contents with items.
func writeItems(items []Item) error {
	for _, it := range items {
		data, err := it.Decode()
		if err != nil {
			return fmt.Errorf("decode %s item: %w", it.MIME, err)
		}
		switch it.MIME {
		case "text/plain":
			clipboard.Write(clipboard.FmtText, data)
		case "image/png":
			clipboard.Write(clipboard.FmtImage, data)
		default:
			return fmt.Errorf("unsupported MIME type: %s", it.MIME)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.klb.dev/clipvault/internal/message"
)

// defaultSource returns a human-readable identifier for this host, recorded
// as the origin of captured entries.
func defaultSource() string {
	if v := os.Getenv("CLIPVAULT_SOURCE"); v != "" {
		return v
	}
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

// fmtAge renders a timestamp as a short relative age.
func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	if age < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	}
	return t.Format("2006-01-02")
}

const previewWidth = 60

// preview renders a history entry as a single trimmed display line.
func preview(e message.Entry) string {
	if e.Kind != "text" {
		return fmt.Sprintf("<%s, %d bytes>", e.Kind, len(e.Content))
	}
	s := strings.Join(strings.Fields(e.Content), " ")
	if len(s) > previewWidth {
		s = s[:previewWidth] + "…"
	}
	return s
}

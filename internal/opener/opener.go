// Package opener hands URLs and files to the platform default handler
// (xdg-open, open, or "cmd /c start").
package opener

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// swapped in tests
var getRuntime = func() string { return runtime.GOOS }

// Open launches the platform handler for target, which may be a URL or a
// file path. The handler is started and not waited on.
func Open(target string) error {
	cmd, err := command(target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	return nil
}

// OpenURL is Open restricted to http(s) URLs. It rejects anything that does
// not parse as an absolute web URL before shelling out.
func OpenURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open non-web url %q", raw)
	}
	return Open(u.String())
}

// IsURL reports whether s looks like an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func command(target string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

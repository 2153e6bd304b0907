package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go.klb.dev/clipvault/internal/message"
	"go.klb.dev/clipvault/internal/opener"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a stored URL entry in the default handler",
		Long: `Fetches the given history entry from the running daemon and, if it is a
web URL, opens it with the platform default handler (xdg-open, open, or
"cmd /c start").`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error { return runOpen(args[0]) },
	}
}

func runOpen(arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", arg)
	}

	resp, err := request(&message.Message{Type: message.TypeGet, ID: id})
	if err != nil {
		return err
	}
	if len(resp.Entries) != 1 {
		return fmt.Errorf("malformed reply for entry %d", id)
	}

	e := resp.Entries[0]
	if e.Kind != "text" {
		return fmt.Errorf("entry %d is %s content, not a URL", id, e.Kind)
	}

	target := strings.TrimSpace(e.Content)
	if !opener.IsURL(target) {
		return fmt.Errorf("entry %d does not contain a web URL", id)
	}
	return opener.OpenURL(target)
}

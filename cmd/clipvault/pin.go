package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go.klb.dev/clipvault/internal/message"
)

func newPinCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin a history entry so clear and pruning keep it",
		Long: `Marks the given history entry as pinned. Pinned entries survive
"clipvault clear" and the max-entries cap. Use --remove to unpin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			_, err = request(&message.Message{
				Type:   message.TypePin,
				ID:     id,
				Pinned: !remove,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "unpin the entry instead")

	return cmd
}

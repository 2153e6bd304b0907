package main

import (
	"github.com/spf13/cobra"

	"go.klb.dev/clipvault/internal/message"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Bring up the manager window of the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeShow})
			return err
		},
	}
}

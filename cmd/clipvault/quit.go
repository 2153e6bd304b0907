package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.klb.dev/clipvault/internal/message"
)

func newQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Stop the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := request(&message.Message{Type: message.TypeQuit}); err != nil {
				return err
			}
			fmt.Println("Daemon is shutting down.")
			return nil
		},
	}
}

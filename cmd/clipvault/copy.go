package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipvault/internal/message"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [id]",
		Short: "Copy stdin or a stored entry to the clipboard",
		Long: `Without arguments, reads stdin and places it on the system clipboard via
the running daemon (like pbcopy). With an entry id, restores that stored
history entry to the clipboard.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runCopy(v, args) },
	}

	cmd.Flags().String("mime", "text/plain", "MIME type of the data being copied")
	addConfigFlag(cmd)

	return cmd
}

func runCopy(v *viper.Viper, args []string) error {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		_, err = request(&message.Message{Type: message.TypeCopy, ID: id})
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var item message.Item
	if mime := v.GetString("mime"); mime == "text/plain" {
		item = message.NewTextItem(string(data))
	} else {
		item = message.NewBinaryItem(mime, data)
	}

	_, err = request(&message.Message{
		Type:  message.TypeCopy,
		Items: []message.Item{item},
	})
	return err
}

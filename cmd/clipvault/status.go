package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipvault/internal/ipc"
	"go.klb.dev/clipvault/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Long: `Displays the running daemon's version, clipboard backend, database
location, and entry count.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	resp, err := request(&message.Message{Type: message.TypeStatus})
	if err != nil {
		return err
	}
	if resp.Status == nil {
		return fmt.Errorf("malformed status reply")
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp.Status, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	s := resp.Status
	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Instance:\t%s\n", s.Instance)
	fmt.Fprintf(tw, "Version:\t%s\n", s.Version)
	fmt.Fprintf(tw, "Transport:\tipc (%s)\n", ipc.SocketPath())
	fmt.Fprintf(tw, "Backend:\t%s\n", s.Backend)
	fmt.Fprintf(tw, "Database:\t%s\n", s.Database)
	fmt.Fprintf(tw, "Entries:\t%d\n", s.Entries)
	fmt.Fprintf(tw, "Tray:\t%t\n", s.Tray)
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(tw, "Started:\t%s (%s)\n", s.StartedAt.UTC().Format(time.RFC3339), fmtAge(s.StartedAt))
	}
	if len(s.LatestTypes) > 0 {
		fmt.Fprintf(tw, "Clipboard:\t%s\n", strings.Join(s.LatestTypes, ","))
	}
	return tw.Flush()
}

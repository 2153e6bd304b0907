package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipvault/internal/message"
)

func newHistoryCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored clipboard entries",
		Long: `Lists the most recent clipboard history entries recorded by the running
daemon, newest first.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runHistory(v) },
	}

	f := cmd.Flags()
	f.Int("limit", defaultHistoryLimit, "maximum number of entries to list")
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runHistory(v *viper.Viper) error {
	resp, err := request(&message.Message{
		Type:  message.TypeHistory,
		Limit: v.GetInt("limit"),
	})
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp.Entries, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	if len(resp.Entries) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tKIND\tAGE\tCONTENT\n")
	fmt.Fprintf(tw, "--\t----\t---\t-------\n")
	for _, e := range resp.Entries {
		marker := ""
		if e.Pinned {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d%s\t%s\t%s\t%s\n",
			e.ID, marker, e.Kind, fmtAge(e.CreatedAt), preview(e),
		)
	}
	return tw.Flush()
}

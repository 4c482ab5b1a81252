package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/simboot/simboot/sim/history"
)

var historyLimit int // Number of runs shown by the history command

var errNoHistoryDB = errors.New("no history database configured (use --history or SIMBOOT_HISTORY_DB)")

// historyCmd prints recent runs from the SQLite ledger.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs recorded in the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printHistory(cmd.Context(), cmd.OutOrStdout(), cfg.HistoryDB, historyLimit)
	},
}

func printHistory(ctx context.Context, w io.Writer, path string, limit int) error {
	if path == "" {
		return errNoHistoryDB
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tCLASS\tSCENARIO\tELAPSED")
	for _, e := range entries {
		started := "-"
		if !e.Started.IsZero() {
			started = e.Started.Local().Format(time.DateTime)
		}
		elapsed := "-"
		if !e.Started.IsZero() && !e.Finished.IsZero() {
			elapsed = e.Finished.Sub(e.Started).Round(time.Millisecond).String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, started, e.Status, dash(e.ClassName), dash(e.Source), elapsed)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show (0 for all)")
}

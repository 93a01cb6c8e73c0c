package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent report runs",
	Long: `Lists past pipeline runs, newest first: when they ran, how long they
took, the input files, the requested reports and the outcome.

Only run metadata is kept; the data read from input files is never stored.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of runs to list (default 20)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if services == nil || services.History == nil {
		return errors.New("history service not configured")
	}

	runs, err := services.History.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tDURATION\tFILES\tREPORTS\tRECORDS\tSTATUS")
	for _, run := range runs {
		status := "ok"
		switch {
		case run.Error != "":
			status = "error: " + run.Error
		case run.Failed > 0:
			status = fmt.Sprintf("%d failed", run.Failed)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration().Round(time.Millisecond),
			strings.Join(run.Files, ","),
			strings.Join(run.Reports, ","),
			run.Records,
			status)
	}
	return tw.Flush()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zyndor/xm/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recorded runs",
	Long: `Lists the most recent runs recorded to the history database,
newest first, with their filter and tally. Failed tests of each run are
listed beneath it.`,
	RunE: showHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10,
		"maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, r := range runs {
		filter := r.Filter
		if filter == "" {
			filter = "*"
		}
		fmt.Fprintf(out, "%s  %s  filter=%q  run=%d passed=%d ignored=%d\n",
			r.GUID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			filter, r.Run, r.Passed, r.Ignored)

		failures, err := db.FailuresFor(r.GUID)
		if err != nil {
			return fmt.Errorf("reading failures: %w", err)
		}
		for _, f := range failures {
			fmt.Fprintf(out, "    FAILED %s\n", f)
		}
	}
	return nil
}

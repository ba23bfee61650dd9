package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylemig/internal/history"
	"stylemig/internal/report"
)

var (
	historyClear bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past conversions",
	Long: `Show past conversions, newest first.

Examples:
  stylemig history
  stylemig history -n 5
  stylemig history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	addFormatFlag(historyCmd)
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded conversions")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	hist := history.NewManager(cfg.HistoryPath)
	if historyClear {
		if err := hist.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	}

	if err := hist.Load(); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	entries := hist.List()
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}
	return report.History(cmd.OutOrStdout(), entries, format)
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylemig/internal/batch"
	"stylemig/internal/convert"
	"stylemig/internal/history"
	"stylemig/internal/logger"
	"stylemig/internal/report"
	"stylemig/internal/tui"
)

var (
	batchWorkers    int
	batchNoProgress bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Convert many style packages",
	Long: `Convert several styles concurrently. Each input may be a style
folder, a .zip file, or a folder containing styles.

A failing style never stops the others; the command exits with an
error if any style failed.

Examples:
  stylemig batch ./styles
  stylemig batch a.zip b.zip ./more --workers 8 -o dist`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	addConversionFlags(batchCmd)
	addFormatFlag(batchCmd)
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent conversions (default from config)")
	batchCmd.Flags().BoolVar(&batchNoProgress, "no-progress", false, "Disable the progress display")
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := applyConversionFlags(cmd, cfg); err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}

	inputs, err := batch.Discover(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no styles found in %v", args)
	}

	interactive := format == report.Text && !batchNoProgress && tui.Interactive(os.Stdout)
	if interactive {
		// Log lines would tear the progress display.
		log = logger.NewNop()
	}

	conv, err := convert.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	var results []batch.Result
	var runErr error
	run := func(ctx context.Context, emit func(batch.Event)) error {
		results, runErr = batch.Run(ctx, conv, inputs, batch.Options{
			Workers: cfg.Workers,
			OnEvent: emit,
			Logger:  log,
		})
		return nil
	}

	if interactive {
		title := fmt.Sprintf("Converting %d styles with %d workers", len(inputs), cfg.Workers)
		if err := tui.Run(cmd.Context(), title, len(inputs), cmd.OutOrStdout(), run); err != nil {
			return err
		}
	} else {
		_ = run(cmd.Context(), nil)
	}

	hist := history.NewManager(cfg.HistoryPath)
	if err := hist.Load(); err != nil {
		log.Warn("Failed to load history", logger.Error(err))
	} else {
		for _, r := range results {
			hist.Record(r.Input, r.Report, r.Err)
		}
		if err := hist.Save(); err != nil {
			log.Warn("Failed to save history", logger.Error(err))
		}
	}

	if err := report.Batch(cmd.OutOrStdout(), results, format); err != nil {
		return err
	}
	return runErr
}

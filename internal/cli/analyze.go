package cli

import (
	"github.com/spf13/cobra"

	"stylemig/internal/convert"
	"stylemig/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input>",
	Short: "Show what a conversion would do without writing anything",
	Long: `Analyze a legacy style: detected custom features, complexity tier,
selected template, asset moves and stylesheet changes.

Examples:
  stylemig analyze ./styles/ocean
  stylemig analyze ocean.zip --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	addFormatFlag(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	conv, err := convert.FromConfig(cfg, log)
	if err != nil {
		return err
	}
	opts := conv.Options()
	opts.DryRun = true

	// A validation failure still carries a report worth showing.
	rep, runErr := conv.WithOptions(opts).Run(cmd.Context(), args[0])
	if rep != nil {
		if err := report.Conversion(cmd.OutOrStdout(), rep, format); err != nil {
			return err
		}
	}
	return runErr
}

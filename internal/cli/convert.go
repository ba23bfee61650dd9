package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylemig/internal/config"
	"stylemig/internal/convert"
	"stylemig/internal/history"
	"stylemig/internal/logger"
	"stylemig/internal/report"
)

var (
	convertOutput        string
	convertZip           bool
	convertIconThreshold string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert one style package",
	Long: `Convert a legacy style folder or .zip file.

The converted style is written to <output>/<name>, or to
<output>/<name>.zip with --zip.

Examples:
  stylemig convert ./styles/ocean
  stylemig convert ocean.zip --zip -o dist
  stylemig convert ./styles/ocean --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addConversionFlags(convertCmd)
	addFormatFlag(convertCmd)
}

// addConversionFlags registers the flags shared by convert and batch
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&convertZip, "zip", false, "Write .zip packages instead of folders")
	cmd.Flags().StringVar(&convertIconThreshold, "icon-threshold", "", `Images smaller than this are icons, e.g. "50KB"`)
}

// applyConversionFlags overrides config values with command line flags
func applyConversionFlags(cmd *cobra.Command, cfg *config.Config) error {
	if convertOutput != "" {
		cfg.OutputDir = convertOutput
	}
	if cmd.Flags().Changed("zip") {
		cfg.Zip = convertZip
	}
	if convertIconThreshold != "" {
		if err := cfg.SetIconThreshold(convertIconThreshold); err != nil {
			return err
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
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

	conv, err := convert.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	input := args[0]
	rep, convErr := conv.Run(cmd.Context(), input)

	hist := history.NewManager(cfg.HistoryPath)
	if err := hist.Load(); err != nil {
		log.Warn("Failed to load history", logger.Error(err))
	} else {
		if rep != nil {
			if prev, ok := hist.Latest(rep.Name); ok {
				log.Info("Style was converted before",
					logger.String("name", prev.Name),
					logger.String("output", prev.Output))
			}
		}
		hist.Record(input, rep, convErr)
		if err := hist.Save(); err != nil {
			log.Warn("Failed to save history", logger.Error(err))
		}
	}

	if rep != nil {
		if err := report.Conversion(cmd.OutOrStdout(), rep, format); err != nil {
			return err
		}
	}
	if convErr != nil {
		return fmt.Errorf("conversion failed: %w", convErr)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stylemig/internal/config"
	"stylemig/internal/logger"
	"stylemig/internal/report"
)

var (
	logLevel     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "stylemig",
	Short: "Migrate legacy style packages to the new style format",
	Long: `stylemig converts style packages (themed skins) from the legacy
layout to the new one.

It rewrites the style script into the new template, keeping custom
code such as print helpers or iframe resizing, migrates stylesheets
and config.xml, and sorts fonts, icons and images into their folders.

Settings live in ~/.stylemig/config.toml (override the directory
with STYLEMIG_HOME).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// addFormatFlag registers --format on commands with machine output
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", string(report.Text), "Output format: text, yaml or json")
}

// setup loads the config and builds the logger for a command
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stylemig/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stylemig configuration",
	Long:  `View and modify stylemig configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save the config file.

Keys: ` + strings.Join(config.Keys, ", ") + `

Examples:
  stylemig config set icon_threshold 64KB
  stylemig config set workers 8
  stylemig config set template_dir ~/style-templates`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in editor",
	RunE:  runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  config_file:    %s\n", cfg.ConfigPath)
	fmt.Fprintf(out, "  history_file:   %s\n", cfg.HistoryPath)
	fmt.Fprintf(out, "  output_dir:     %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  template_dir:   %s\n", orNone(cfg.TemplateDir))
	fmt.Fprintf(out, "  rules_file:     %s\n", orNone(cfg.RulesFile))
	fmt.Fprintf(out, "  icon_threshold: %s (%d bytes)\n", cfg.IconThresholdText, cfg.IconThreshold)
	fmt.Fprintf(out, "  workers:        %d\n", cfg.Workers)
	fmt.Fprintf(out, "  log_level:      %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  zip:            %t\n", cfg.Zip)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(embedded)"
	}
	return s
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cfg.ConfigPath)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(cfg.ConfigPath); os.IsNotExist(err) {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}

	process, err := os.StartProcess("/usr/bin/env", []string{"env", editor, cfg.ConfigPath}, &proc)
	if err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	_, err = process.Wait()
	return err
}

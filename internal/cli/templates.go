package cli

import (
	"github.com/spf13/cobra"

	"stylemig/internal/report"
	"stylemig/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the target style templates",
	Long: `List the template bundles styles are converted into.

Bundles from the template_dir setting replace embedded bundles of
the same name.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	addFormatFlag(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	infos, err := templates.NewLoader(cfg.TemplateDir).List()
	if err != nil {
		return err
	}
	return report.Templates(cmd.OutOrStdout(), infos, format)
}

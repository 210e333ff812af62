// Package cmd: inject command.
// Adds the LLM Resources sidebar category to an already built site without
// regenerating the outputs.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/llmsdocs/config"
	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/archive"
	"github.com/spf13/cobra"
)

var injectFlags *config.Flags

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Add LLM Resources links to the sidebar of built HTML pages",
	Long: `Inject rewrites every HTML file of the build that has a docs sidebar,
appending a category that links to llms.txt, llms-full.txt and the Markdown
archive. Files that already carry the category are left alone.

Examples:
  llmsdocs inject --build-dir ./build --base-url https://docs.example.com`,
	Args: cobra.NoArgs,
	RunE: runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)
	injectFlags = config.AddFlags(injectCmd.Flags())
}

func runInject(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd, injectFlags)
	if err != nil {
		return err
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("%w: BASE_URL is required", core.ErrInvalidConfig)
	}
	archiveName, err := archive.Filename("markdown", cfg.ArchiveFormat)
	if err != nil {
		return err
	}

	n, err := newInjector(cfg, archiveName, logger).InjectDir(cmd.Context(), cfg.BuildDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sidebar injection complete: %d files updated\n", n)
	return nil
}

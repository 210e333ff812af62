// Package cmd implements the CLI commands for llmsdocs using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gaurav-prasanna/llmsdocs/config"
	"github.com/gaurav-prasanna/llmsdocs/logging"
	"github.com/spf13/cobra"
)

// Global flag variables.
var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "llmsdocs",
	Short: "Turn a Docusaurus build into LLM-friendly documentation",
	Long: `llmsdocs reads a built Docusaurus site and its sidebar description and
writes llms.txt, llms-full.txt, per-page Markdown files and a Markdown archive.

Usage:
  llmsdocs generate [flags]
  llmsdocs inject [flags]
  llmsdocs convert <file.html>`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig layers the config file, the environment and the command's
// flags, resolves paths, and builds the logger.
func loadConfig(cmd *cobra.Command, flags *config.Flags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	flags.Apply(cfg)
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Resolve(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

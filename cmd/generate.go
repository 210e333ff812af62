// Package cmd: generate command.
// This is the main command that orchestrates the pipeline:
// sidebar → map build → convert → render → write → archive.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/llmsdocs/config"
	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/archive"
	"github.com/gaurav-prasanna/llmsdocs/core/docusaurus"
	"github.com/gaurav-prasanna/llmsdocs/core/inject"
	"github.com/gaurav-prasanna/llmsdocs/core/output"
	"github.com/gaurav-prasanna/llmsdocs/core/render"
	"github.com/gaurav-prasanna/llmsdocs/core/sidebar"
	"github.com/gaurav-prasanna/llmsdocs/logging"
	"github.com/spf13/cobra"
)

var generateFlags *config.Flags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate llms.txt, llms-full.txt and Markdown files from a build",
	Long: `Generate maps every page of the sidebar onto the built HTML, converts it to
Markdown and writes the LLM-oriented outputs.

Examples:
  llmsdocs generate --base-url https://docs.example.com --product-name Acme
  llmsdocs generate --config llmsdocs.yaml --archive-format tar.gz
  BASE_URL=https://docs.example.com PRODUCT_NAME=Acme llmsdocs generate`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateFlags = config.AddFlags(generateCmd.Flags())
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd, generateFlags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sum, err := generate(cmd.Context(), cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	sum.print(cmd.OutOrStdout())
	return nil
}

// summary reports what a generate run produced.
type summary struct {
	Pages    int
	Files    int
	Sections int
	Duration time.Duration

	IndexPath   string
	FullPath    string
	ArchivePath string
	MarkdownDir string
}

func (s *summary) print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generation complete")
	fmt.Fprintf(w, "  Pages processed:  %d\n", s.Pages)
	fmt.Fprintf(w, "  Files generated:  %d\n", s.Files)
	fmt.Fprintf(w, "  Sections:         %d\n", s.Sections)
	fmt.Fprintf(w, "  Duration:         %.2fs\n", s.Duration.Seconds())
	fmt.Fprintln(w, "  Output files:")
	for _, p := range []string{s.IndexPath, s.FullPath, s.ArchivePath, s.MarkdownDir + string(filepath.Separator)} {
		fmt.Fprintf(w, "    - %s\n", p)
	}
}

// generate runs the whole pipeline for cfg. Group markers go to logw.
func generate(ctx context.Context, cfg *config.Config, logger *slog.Logger, logw io.Writer) (*summary, error) {
	start := time.Now()

	logging.Group(logw, "Loading configuration")
	logger.Info("Configuration",
		slog.String("build_dir", cfg.BuildDir),
		slog.String("output_dir", cfg.OutputDir),
		logging.URL(cfg.BaseURL),
		slog.String("product", cfg.ProductName))
	logging.GroupEnd(logw)

	if info, err := os.Stat(cfg.BuildDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", core.ErrBuildDirNotFound, cfg.BuildDir)
	}

	docs, err := processDocs(ctx, cfg, logger, logw)
	if err != nil {
		return nil, err
	}
	logger.Info("Processed documentation pages", logging.Count(docs.TotalPages))

	archiveName, err := archive.Filename("markdown", cfg.ArchiveFormat)
	if err != nil {
		return nil, err
	}
	opts := render.Options{
		ProductName:         cfg.ProductName,
		Tagline:             cfg.Tagline,
		BaseURL:             cfg.BaseURL,
		IncludeDescriptions: cfg.IncludeDescriptions,
		ArchiveName:         archiveName,
		TableOfContents:     cfg.TableOfContents,
		Stats:               cfg.Stats,
	}

	writer, err := output.New(cfg.OutputDir, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}

	sum := &summary{Pages: docs.TotalPages, Sections: len(docs.Sections), MarkdownDir: writer.MarkdownRoot()}

	renderers := []core.Renderer{
		render.NewIndexRenderer(opts),
		render.NewFullRenderer(opts),
		render.NewManifestRenderer(opts),
	}
	for _, r := range renderers {
		logging.Group(logw, "Generating "+r.Filename())
		data, err := r.Render(docs)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", r.Filename(), err)
		}
		p, err := writer.WriteFile(r.Filename(), data)
		if err != nil {
			return nil, err
		}
		logger.Info("Generated", logging.Path(p))
		logging.GroupEnd(logw)

		switch r.Filename() {
		case render.IndexFilename:
			sum.IndexPath = p
		case render.FullFilename:
			sum.FullPath = p
		}
	}

	logging.Group(logw, "Generating markdown files")
	sum.Files, err = writer.WriteMarkdownFiles(docs)
	if err != nil {
		return nil, err
	}
	if cfg.DirectoryIndexes {
		n, err := writer.WriteDirectoryIndexes(docs)
		if err != nil {
			return nil, err
		}
		logger.Info("Generated directory indexes", logging.Count(n))
	}
	logger.Info("Generated markdown files", logging.Count(sum.Files))
	logging.GroupEnd(logw)

	logging.Group(logw, "Creating "+archiveName)
	res, err := archive.Create(cfg.ArchiveFormat, writer.MarkdownRoot(), filepath.Join(cfg.OutputDir, archiveName))
	if err != nil {
		return nil, err
	}
	sum.ArchivePath = res.Path
	sourceBytes, err := archive.DirSize(writer.MarkdownRoot())
	if err != nil {
		return nil, err
	}
	logger.Info("Created archive",
		logging.Path(res.Path),
		logging.Count(res.Files),
		slog.Int64("bytes", res.Bytes),
		slog.Int64("source_bytes", sourceBytes))
	logging.GroupEnd(logw)

	if cfg.InjectSidebar {
		logging.Group(logw, "Injecting LLM Resources into sidebar")
		if _, err := newInjector(cfg, archiveName, logger).InjectDir(ctx, cfg.BuildDir); err != nil {
			return nil, err
		}
		logging.GroupEnd(logw)
	}

	outputs := []struct {
		name  string
		value any
	}{
		{"llms_txt_path", sum.IndexPath},
		{"llms_full_txt_path", sum.FullPath},
		{"markdown_zip_path", sum.ArchivePath},
		{"files_generated", sum.Files},
		{"sections_count", sum.Sections},
	}
	for _, o := range outputs {
		if err := logging.SetOutput(logger, o.name, o.value); err != nil {
			return nil, err
		}
	}

	sum.Duration = time.Since(start)
	return sum, nil
}

// processDocs parses the sidebar and maps it onto the build, or discovers
// pages from the build alone when no sidebar file exists.
func processDocs(ctx context.Context, cfg *config.Config, logger *slog.Logger, logw io.Writer) (*core.ProcessedDocs, error) {
	mapper := docusaurus.New(docusaurus.Options{
		BuildDir:  cfg.BuildDir,
		BaseURL:   cfg.BaseURL,
		StripHTML: cfg.StripHTML,
	}, logger)

	logging.Group(logw, "Parsing documentation structure")
	if _, err := os.Stat(cfg.SidebarPath); errors.Is(err, os.ErrNotExist) {
		logger.Warn("Sidebar not found, discovering pages from build", logging.Path(cfg.SidebarPath))
		logging.GroupEnd(logw)

		logging.Group(logw, "Discovering pages from build output")
		defer logging.GroupEnd(logw)
		return mapper.DiscoverFromBuild(ctx)
	}

	logger.Info("Using sidebar", logging.Path(cfg.SidebarPath))
	sections, err := sidebar.New(logger).Load(cfg.SidebarPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Found top-level sections",
		logging.Count(len(sections)),
		slog.Int("pages", sidebar.CountPages(sections)))
	logging.GroupEnd(logw)

	logging.Group(logw, "Processing Docusaurus build")
	defer logging.GroupEnd(logw)
	return mapper.ProcessBuild(ctx, sections)
}

func newInjector(cfg *config.Config, archiveName string, logger *slog.Logger) *inject.Injector {
	files := []string{render.IndexFilename, render.FullFilename, archiveName}
	return inject.New(cfg.BaseURL, files, logger)
}

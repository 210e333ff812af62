// Package docusaurus maps the pages of a navigation tree onto the rendered
// HTML of a Docusaurus build and enriches them with converted Markdown.
package docusaurus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/convert"
	"github.com/gaurav-prasanna/llmsdocs/core/extract"
	"github.com/gaurav-prasanna/llmsdocs/core/fetch"
	"github.com/gaurav-prasanna/llmsdocs/core/links"
	"github.com/gaurav-prasanna/llmsdocs/core/sidebar"
	"github.com/gaurav-prasanna/llmsdocs/crawl"
	"github.com/gaurav-prasanna/llmsdocs/logging"
)

// Section name and label used for pages found without a sidebar.
const (
	FallbackSection = "docs"
	FallbackLabel   = "Documentation"
)

// Options configures a Mapper.
type Options struct {
	BuildDir  string
	BaseURL   string
	StripHTML bool
}

// Mapper locates and converts the build artifact of every page.
type Mapper struct {
	Options   Options
	Fetcher   core.Fetcher
	Converter core.Converter
	Logger    *slog.Logger
}

// New creates a Mapper reading from the local disk.
func New(opts Options, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		Options:   opts,
		Fetcher:   fetch.New(),
		Converter: convert.New(opts.StripHTML),
		Logger:    logger,
	}
}

// ProcessBuild enriches every page of the tree with the content of its HTML
// artifact. Pages without an artifact, or whose artifact fails to convert,
// are logged and left out of the page map. Only an unreadable build
// directory or a cancelled context is an error.
func (m *Mapper) ProcessBuild(ctx context.Context, sections []*core.Section) (*core.ProcessedDocs, error) {
	pages := sidebar.Flatten(sections)
	m.Logger.Info("Found pages in sidebar configuration", logging.Count(len(pages)))

	files, err := crawl.FindHTML(m.Options.BuildDir)
	if err != nil {
		return nil, err
	}
	index, err := crawl.BuildIndex(m.Options.BuildDir, files)
	if err != nil {
		return nil, err
	}
	m.Logger.Debug("Found HTML files in build directory", logging.Count(len(files)))

	known := knownPaths(pages)
	docs := core.NewProcessedDocs(sections)
	skipped := 0

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, ok := index.Lookup(page.URLPath, page.ID)
		if !ok {
			m.Logger.Warn("Could not find HTML file", logging.Page(page.ID))
			skipped++
			continue
		}

		parsed, err := m.convert(ctx, file)
		if err != nil {
			m.Logger.Warn("Failed to process page", logging.Page(page.ID), logging.Error(err))
			skipped++
			continue
		}

		if report := links.Validate(parsed.Content, known, page.URLPath); !report.Valid {
			m.Logger.Debug("Page has unresolved links",
				logging.Page(page.ID),
				slog.String("links", strings.Join(report.Broken, ", ")))
		}

		page.Content = links.Transform(parsed.Content, m.Options.BaseURL, page.URLPath)
		if parsed.Title != "" && parsed.Title != extract.UntitledTitle {
			page.Title = parsed.Title
		}
		if parsed.Description != "" {
			page.Description = parsed.Description
		}

		docs.Add(page)
		m.Logger.Debug("Processed page", logging.Page(page.ID), logging.Path(page.FilePath))
	}

	m.Logger.Info("Processed pages", logging.Count(docs.TotalPages), slog.Int("skipped", skipped))

	SyncSections(sections, docs.Pages)
	docs.TotalPages = len(docs.Pages)
	return docs, nil
}

func (m *Mapper) convert(ctx context.Context, file string) (core.ParsedHTML, error) {
	res, err := m.Fetcher.Fetch(ctx, file)
	if err != nil {
		return core.ParsedHTML{}, err
	}
	parsed, err := m.Converter.Convert(res.HTML)
	if err != nil {
		return core.ParsedHTML{}, fmt.Errorf("converting %s: %w", file, err)
	}
	return parsed, nil
}

// knownPaths collects the URL and file paths of every page in the tree for
// link validation.
func knownPaths(pages []*core.Page) map[string]bool {
	known := make(map[string]bool, len(pages)*3)
	for _, p := range pages {
		known[p.URLPath] = true
		known[p.FilePath] = true
		known["/"+p.FilePath] = true
	}
	return known
}

// SyncSections replaces every page reference in the tree with the enriched
// page of the same ID, when one exists.
func SyncSections(sections []*core.Section, pages map[string]*core.Page) {
	for _, s := range sections {
		for i, p := range s.Pages {
			if enriched, ok := pages[p.ID]; ok {
				s.Pages[i] = enriched
			}
		}
		if s.IndexPage != nil {
			if enriched, ok := pages[s.IndexPage.ID]; ok {
				s.IndexPage = enriched
			}
		}
		SyncSections(s.Subsections, pages)
	}
}

// DiscoverFromBuild builds a single flat section from every HTML artifact in
// the build directory. It is used when no sidebar description is available.
func (m *Mapper) DiscoverFromBuild(ctx context.Context) (*core.ProcessedDocs, error) {
	files, err := crawl.FindHTML(m.Options.BuildDir)
	if err != nil {
		return nil, err
	}

	section := &core.Section{
		Name:        FallbackSection,
		Label:       FallbackLabel,
		Pages:       []*core.Page{},
		Subsections: []*core.Section{},
	}
	docs := core.NewProcessedDocs([]*core.Section{section})

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := crawl.Rel(m.Options.BuildDir, file)
		if err != nil {
			m.Logger.Warn("Failed to process file", logging.Path(file), logging.Error(err))
			continue
		}
		urlPath := "/" + strings.TrimSuffix(rel, ".html")

		parsed, err := m.convert(ctx, file)
		if err != nil {
			m.Logger.Warn("Failed to process file", logging.Path(file), logging.Error(err))
			continue
		}

		id := strings.TrimPrefix(urlPath, "/")
		if id == "" {
			id = "index"
		}
		page := &core.Page{
			ID:          id,
			Title:       parsed.Title,
			Description: parsed.Description,
			URLPath:     urlPath,
			FilePath:    crawl.FilePath(urlPath),
			Content:     links.Transform(parsed.Content, m.Options.BaseURL, urlPath),
			Section:     FallbackSection,
			Order:       len(section.Pages),
		}
		section.Pages = append(section.Pages, page)
		docs.Add(page)
	}

	m.Logger.Info("Discovered pages from build output", logging.Count(docs.TotalPages))
	return docs, nil
}

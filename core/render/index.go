// Package render provides the output renderers for llmsdocs.
// This file implements the llms.txt index: one link line per page, grouped
// under headings that follow the section tree.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
)

// Output file names.
const (
	IndexFilename    = "llms.txt"
	FullFilename     = "llms-full.txt"
	ManifestFilename = "llms.json"
	ArchiveFilename  = "markdown.zip"
)

const maxDescription = 100

// Options holds the site settings shared by all renderers.
type Options struct {
	ProductName string
	Tagline     string
	// BaseURL has no trailing slash.
	BaseURL             string
	IncludeDescriptions bool
	// ArchiveName is the archive file advertised in headers. Defaults to
	// markdown.zip.
	ArchiveName string
	// TableOfContents and Stats add the optional llms.txt fragments.
	TableOfContents bool
	Stats           bool
}

func (o Options) archiveURL() string {
	name := o.ArchiveName
	if name == "" {
		name = ArchiveFilename
	}
	return o.BaseURL + "/" + name
}

// header writes the title and optional tagline shared by llms.txt and
// llms-full.txt.
func (o Options) header(b *strings.Builder) {
	fmt.Fprintf(b, "# %s Documentation\n\n", o.ProductName)
	if o.Tagline != "" {
		b.WriteString(o.Tagline + "\n\n")
	}
}

// IndexRenderer renders llms.txt.
type IndexRenderer struct {
	opts Options
}

// NewIndexRenderer creates an IndexRenderer.
func NewIndexRenderer(opts Options) *IndexRenderer {
	return &IndexRenderer{opts: opts}
}

// Render builds the index from the section tree.
func (r *IndexRenderer) Render(docs *core.ProcessedDocs) ([]byte, error) {
	var b strings.Builder
	r.opts.header(&b)

	b.WriteString("> [!TIP]\n")
	fmt.Fprintf(&b, "> A complete archive of all documentation in Markdown format is available at %s\n\n", r.opts.archiveURL())

	if r.opts.TableOfContents {
		b.WriteString(TableOfContents(docs))
	}
	for _, s := range docs.Sections {
		r.section(&b, s, 0)
	}
	if r.opts.Stats {
		b.WriteString(Stats(docs))
	}
	return []byte(b.String()), nil
}

// Filename returns llms.txt.
func (r *IndexRenderer) Filename() string {
	return IndexFilename
}

func (r *IndexRenderer) section(b *strings.Builder, s *core.Section, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", min(depth+2, 6)), s.Label)
	if s.IndexPage != nil {
		b.WriteString(r.pageLine(s.IndexPage, indent))
	}
	for _, p := range s.Pages {
		b.WriteString(r.pageLine(p, indent))
	}
	for _, sub := range s.Subsections {
		r.section(b, sub, depth+1)
	}
	b.WriteString("\n")
}

func (r *IndexRenderer) pageLine(p *core.Page, indent string) string {
	line := fmt.Sprintf("%s- [%s](%s/%s)", indent, p.Title, r.opts.BaseURL, p.FilePath)
	if r.opts.IncludeDescriptions && p.Description != "" {
		line += ": " + Truncate(p.Description, maxDescription)
	}
	return line + "\n"
}

// Truncate shortens s to at most limit runes, ending it with "..." when cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// TableOfContents lists the top-level sections and their direct
// subsections as anchor links.
func TableOfContents(docs *core.ProcessedDocs) string {
	var b strings.Builder
	b.WriteString("## Table of Contents\n\n")
	for _, s := range docs.Sections {
		fmt.Fprintf(&b, "- [%s](#%s)\n", s.Label, sanitize.TOCSlug(s.Label))
		for _, sub := range s.Subsections {
			fmt.Fprintf(&b, "  - [%s](#%s)\n", sub.Label, sanitize.TOCSlug(sub.Label))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Stats is a footer with the page and section counts.
func Stats(docs *core.ProcessedDocs) string {
	return fmt.Sprintf("---\n\n_This documentation contains %d pages across %d sections._\n\n",
		docs.TotalPages, len(docs.Sections))
}

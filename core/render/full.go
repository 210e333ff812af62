// Package render: llms-full.txt renderer.
// Concatenates every converted page into one file, each wrapped in a
// <page> block with a small front matter header.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
	"github.com/gaurav-prasanna/llmsdocs/core/sidebar"
)

// FullRenderer renders llms-full.txt.
type FullRenderer struct {
	opts Options
}

// NewFullRenderer creates a FullRenderer.
func NewFullRenderer(opts Options) *FullRenderer {
	return &FullRenderer{opts: opts}
}

// Render writes the preamble followed by one block per converted page, in
// tree order. Pages that never received content from the build are left
// out.
func (r *FullRenderer) Render(docs *core.ProcessedDocs) ([]byte, error) {
	var b strings.Builder
	r.opts.header(&b)

	b.WriteString("> This file contains the complete documentation in a single file for LLM consumption.\n")
	fmt.Fprintf(&b, "> For a lightweight index, see %s/%s\n", r.opts.BaseURL, IndexFilename)
	fmt.Fprintf(&b, "> For individual markdown files, download %s\n\n", r.opts.archiveURL())

	for _, p := range sidebar.Flatten(docs.Sections) {
		if _, ok := docs.Pages[p.ID]; !ok {
			continue
		}
		r.page(&b, p)
	}
	return []byte(b.String()), nil
}

// Filename returns llms-full.txt.
func (r *FullRenderer) Filename() string {
	return FullFilename
}

func (r *FullRenderer) page(b *strings.Builder, p *core.Page) {
	b.WriteString("<page>\n---\n")
	fmt.Fprintf(b, "title: %s\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(b, "description: %s\n", p.Description)
	}
	b.WriteString("source_url:\n")
	fmt.Fprintf(b, "  html: %s%s\n", r.opts.BaseURL, p.URLPath)
	fmt.Fprintf(b, "  md: %s%s.md\n", r.opts.BaseURL, p.URLPath)
	b.WriteString("---\n\n")
	if content := sanitize.CleanMarkdown(p.Content); content != "" {
		b.WriteString(content + "\n")
	}
	b.WriteString("\n</page>\n\n")
}

// Package render: JSON manifest renderer.
// Describes the section tree as JSON for tools that prefer structured
// input. Page entries carry structural counts parsed from the Markdown
// (headings, links, code blocks, tables, lists) next to their URLs.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
)

// Manifest is the root of llms.json.
type Manifest struct {
	Product    string            `json:"product"`
	BaseURL    string            `json:"base_url"`
	TotalPages int               `json:"total_pages"`
	Sections   []ManifestSection `json:"sections"`
}

// ManifestSection mirrors core.Section.
type ManifestSection struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Label       string            `json:"label"`
	Depth       int               `json:"depth"`
	IndexPage   *ManifestPage     `json:"index_page,omitempty"`
	Pages       []ManifestPage    `json:"pages"`
	Subsections []ManifestSection `json:"subsections,omitempty"`
}

// ManifestPage describes one page and where to fetch it.
type ManifestPage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	MarkdownURL string    `json:"markdown_url"`
	FilePath    string    `json:"file_path"`
	Structure   Structure `json:"structure"`
}

// Structure holds counts parsed from a page's Markdown.
type Structure struct {
	Headings   []Heading `json:"headings"`
	Links      int       `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
	Words      int       `json:"words"`
}

// Heading is a Markdown heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ManifestRenderer renders llms.json.
type ManifestRenderer struct {
	opts Options
}

// NewManifestRenderer creates a ManifestRenderer.
func NewManifestRenderer(opts Options) *ManifestRenderer {
	return &ManifestRenderer{opts: opts}
}

// Render builds the manifest from the section tree.
func (r *ManifestRenderer) Render(docs *core.ProcessedDocs) ([]byte, error) {
	m := Manifest{
		Product:    r.opts.ProductName,
		BaseURL:    r.opts.BaseURL,
		TotalPages: docs.TotalPages,
		Sections:   make([]ManifestSection, 0, len(docs.Sections)),
	}
	for _, s := range docs.Sections {
		m.Sections = append(m.Sections, r.section(s))
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Filename returns llms.json.
func (r *ManifestRenderer) Filename() string {
	return ManifestFilename
}

func (r *ManifestRenderer) section(s *core.Section) ManifestSection {
	out := ManifestSection{
		Name:  s.Name,
		Slug:  sanitize.Slug(s.Name),
		Label: s.Label,
		Depth: s.Depth,
		Pages: make([]ManifestPage, 0, len(s.Pages)),
	}
	if s.IndexPage != nil {
		p := r.page(s.IndexPage)
		out.IndexPage = &p
	}
	for _, p := range s.Pages {
		out.Pages = append(out.Pages, r.page(p))
	}
	for _, sub := range s.Subsections {
		out.Subsections = append(out.Subsections, r.section(sub))
	}
	return out
}

func (r *ManifestRenderer) page(p *core.Page) ManifestPage {
	return ManifestPage{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		URL:         r.opts.BaseURL + p.URLPath,
		MarkdownURL: r.opts.BaseURL + "/" + p.FilePath,
		FilePath:    p.FilePath,
		Structure:   analyze(p.Content),
	}
}

func analyze(md string) Structure {
	return Structure{
		Headings:   extractHeadings(md),
		Links:      len(linkRegex.FindAllString(md, -1)),
		CodeBlocks: countCodeBlocks(md),
		Tables:     countTables(md),
		Lists:      countLists(md),
		Words:      len(strings.Fields(stripMarkdown(md))),
	}
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(withoutFences(md), -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// fenceRegex matches an opening or closing code fence line.
var fenceRegex = regexp.MustCompile("(?m)^```")

// countCodeBlocks counts fenced code blocks.
func countCodeBlocks(md string) int {
	return len(fenceRegex.FindAllString(md, -1)) / 2
}

// withoutFences drops the lines inside fenced code blocks so that comment
// lines in shell snippets are not taken for headings.
func withoutFences(md string) string {
	var out []string
	inFence := false
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// countTables counts Markdown tables by their separator rows.
var tableRowRegex = regexp.MustCompile(`(?m)^\|[-:| ]+\|$`)

func countTables(md string) int {
	return len(tableRowRegex.FindAllString(md, -1))
}

// countLists counts list items (lines starting with - or * or 1.).
var listItemRegex = regexp.MustCompile(`(?m)^[ \t]*(?:[-*]|\d+\.)\s`)

func countLists(md string) int {
	return len(listItemRegex.FindAllString(withoutFences(md), -1))
}

var (
	emphasisRegex   = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
)

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := headingRegex.ReplaceAllString(md, "$2")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

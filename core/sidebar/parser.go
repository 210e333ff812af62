// Package sidebar parses a declarative navigation description (YAML or JSON)
// into an ordered tree of sections and pages.
//
// The document is a mapping of group name to item list. Each item is a bare
// doc ID, a {type: doc} reference, a {type: category} with nested items, or
// a {type: link} to an external URL. External links and unknown items are
// dropped with a log message; they never fail the parse.
package sidebar

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
	"github.com/gaurav-prasanna/llmsdocs/logging"
	"gopkg.in/yaml.v3"
)

// Group is one named top-level item list.
type Group struct {
	Name  string
	Items []Item
}

// Parser builds section trees from sidebar documents.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Load reads and parses the sidebar file at path.
func (p *Parser) Load(path string) ([]*core.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", core.ErrSidebarLoad, path, err)
	}
	sections, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", core.ErrSidebarLoad, path, err)
	}
	return sections, nil
}

// Parse decodes a sidebar document and builds the section tree.
func (p *Parser) Parse(data []byte) ([]*core.Section, error) {
	groups, err := DecodeGroups(data)
	if err != nil {
		return nil, err
	}
	return p.Build(groups), nil
}

// DecodeGroups decodes the top-level mapping, preserving declaration order.
func DecodeGroups(data []byte) ([]Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding sidebar: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("decoding sidebar: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decoding sidebar: top level must be a mapping of sidebar name to items")
	}

	var groups []Group
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			continue
		}
		group := Group{Name: key.Value, Items: make([]Item, 0, len(value.Content))}
		for _, n := range value.Content {
			var item Item
			_ = item.UnmarshalYAML(n)
			group.Items = append(group.Items, item)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Build converts decoded groups into top-level sections at depth 0.
func (p *Parser) Build(groups []Group) []*core.Section {
	sections := make([]*core.Section, 0, len(groups))
	for order, g := range groups {
		sections = append(sections, p.buildSection(g.Name, sanitize.SectionLabel(g.Name), g.Items, 0, order))
	}
	return sections
}

func (p *Parser) buildSection(name, label string, items []Item, depth, order int) *core.Section {
	section := &core.Section{
		Name:        name,
		Label:       label,
		Pages:       []*core.Page{},
		Subsections: []*core.Section{},
		Depth:       depth,
		Order:       order,
	}

	pageOrder, subsectionOrder := 0, 0
	for _, item := range items {
		switch item.Kind {
		case KindDoc:
			section.Pages = append(section.Pages, NewPage(item.ID, item.Label, name, depth, pageOrder))
			pageOrder++
		case KindCategory:
			sub := p.buildSection(item.Label, item.Label, item.Items, depth+1, subsectionOrder)
			if item.Link != nil && item.Link.Type == "doc" && item.Link.ID != "" {
				sub.IndexPage = NewPage(item.Link.ID, item.Label, item.Label, depth+1, -1)
			}
			section.Subsections = append(section.Subsections, sub)
			subsectionOrder++
		case KindLink:
			p.logger.Debug("Skipping external link", slog.String("label", item.Label), logging.URL(item.Href))
		default:
			p.logger.Warn("Unknown sidebar item type", slog.String("item", item.Raw), logging.Section(name))
		}
	}
	return section
}

// NewPage creates a page from a doc ID. The URL and file paths are pure
// functions of the ID: "a/b" → "/a/b" and "a/b.md".
func NewPage(docID, label, section string, depth, order int) *core.Page {
	title := label
	if title == "" {
		title = sanitize.DocIDToTitle(docID)
	}
	trimmed := strings.TrimPrefix(docID, "/")
	return &core.Page{
		ID:       docID,
		Title:    title,
		URLPath:  "/" + trimmed,
		FilePath: trimmed + ".md",
		Section:  section,
		Depth:    depth,
		Order:    order,
	}
}

// Flatten returns every page in canonical order: for each section its index
// page, then its pages, then its subsections recursively.
func Flatten(sections []*core.Section) []*core.Page {
	var pages []*core.Page
	var walk func(s *core.Section)
	walk = func(s *core.Section) {
		if s.IndexPage != nil {
			pages = append(pages, s.IndexPage)
		}
		pages = append(pages, s.Pages...)
		for _, sub := range s.Subsections {
			walk(sub)
		}
	}
	for _, s := range sections {
		walk(s)
	}
	return pages
}

// CountPages returns the number of pages reachable from sections.
func CountPages(sections []*core.Section) int {
	return len(Flatten(sections))
}

// Package core defines the shared document model and pipeline interfaces
// for llmsdocs. Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML of one build artifact.
type FetchResult struct {
	Path string
	HTML string
}

// Page is a single documentation unit.
type Page struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URLPath     string `json:"url_path"`
	FilePath    string `json:"file_path"`
	Content     string `json:"-"`
	Section     string `json:"section"`
	Depth       int    `json:"depth"`
	Order       int    `json:"order"`
}

// Section is a named, ordered grouping of pages and nested subsections.
// The section graph is a strict tree.
type Section struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Pages       []*Page    `json:"pages"`
	Subsections []*Section `json:"subsections"`
	IndexPage   *Page      `json:"index_page,omitempty"`
	Depth       int        `json:"depth"`
	Order       int        `json:"order"`
}

// ProcessedDocs is the root aggregate of a run: the section tree plus a
// flat lookup of every enriched page by ID.
type ProcessedDocs struct {
	Sections []*Section
	Pages    map[string]*Page
	// Order lists the keys of Pages in enrichment order.
	Order      []string
	TotalPages int
}

// NewProcessedDocs creates an empty ProcessedDocs for the given tree.
func NewProcessedDocs(sections []*Section) *ProcessedDocs {
	return &ProcessedDocs{
		Sections: sections,
		Pages:    make(map[string]*Page),
	}
}

// Add records an enriched page. Re-adding an ID replaces the entry but keeps
// its original position.
func (d *ProcessedDocs) Add(p *Page) {
	if _, ok := d.Pages[p.ID]; !ok {
		d.Order = append(d.Order, p.ID)
	}
	d.Pages[p.ID] = p
	d.TotalPages = len(d.Pages)
}

// OrderedPages returns the flat page map in enrichment order.
func (d *ProcessedDocs) OrderedPages() []*Page {
	pages := make([]*Page, 0, len(d.Order))
	for _, id := range d.Order {
		if p, ok := d.Pages[id]; ok {
			pages = append(pages, p)
		}
	}
	return pages
}

// ParsedHTML is the result of converting one HTML document.
type ParsedHTML struct {
	Content     string
	Title       string
	Description string
}

// Extraction is the content region and metadata pulled out of a page.
type Extraction struct {
	HTML        string
	Title       string
	Description string
	// Found reports whether a content region was located at all.
	Found bool
}

// Fetcher retrieves the raw HTML of a build artifact.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*FetchResult, error)
}

// Extractor isolates the main content region and page metadata.
type Extractor interface {
	Extract(html string) (*Extraction, error)
}

// Normalizer converts a cleaned HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Converter runs a full HTML document through extraction and normalization.
type Converter interface {
	Convert(html string) (ParsedHTML, error)
}

// Renderer produces one output document from the processed docs.
type Renderer interface {
	Render(docs *ProcessedDocs) ([]byte, error)
	// Filename returns the output file name for this renderer (e.g. "llms.txt").
	Filename() string
}

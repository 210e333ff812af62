// Package extract implements the Extractor interface.
// It isolates the documentation body of a rendered page by:
//  1. Reading the page title and description from headings and meta tags
//  2. Finding the content container (<article>, then theme containers, then <main>)
//  3. Removing navigation, table-of-contents and other theme decorations
package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/llmsdocs/core"
)

// UntitledTitle is used when a page carries no usable title.
const UntitledTitle = "Untitled"

// fallbackContainers are tried in order when the page has no <article>.
var fallbackContainers = []string{".markdown", ".theme-doc-markdown", "main"}

// noiseSelectors are removed from the content container before conversion.
// They contribute navigation chrome, not documentation text.
var noiseSelectors = []string{
	"nav", "footer", "aside",
	".theme-doc-breadcrumbs",
	".theme-doc-toc-mobile", ".theme-doc-toc-desktop",
	".theme-doc-footer", ".pagination-nav",
	".theme-edit-this-page", ".theme-last-updated",
	"script", "style",
	".hash-link", "a.anchor",
	`[aria-hidden="true"]`,
}

var noise = cascadia.MustCompile(strings.Join(noiseSelectors, ", "))

// HTMLExtractor pulls the content region and metadata out of a page.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses html and returns the cleaned content region with the page
// title and description. A page without any content container yields an
// Extraction with Found set to false and an empty HTML fragment.
func (e *HTMLExtractor) Extract(html string) (*core.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	out := &core.Extraction{
		Title:       Title(doc),
		Description: Description(doc),
	}

	content := contentContainer(doc)
	if content == nil {
		return out, nil
	}
	out.Found = true

	content.FindMatcher(noise).Remove()

	// The title is re-added as a heading by the converter.
	if h1 := content.Find("h1").First(); h1.Length() > 0 && cleanText(h1.Text()) == out.Title {
		h1.Remove()
	}

	inner, err := content.Html()
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}
	out.HTML = inner
	return out, nil
}

// contentContainer finds the best content container in priority order.
func contentContainer(doc *goquery.Document) *goquery.Selection {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article
	}
	for _, sel := range fallbackContainers {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// Title returns the page title: the first heading of the article, the first
// heading anywhere, og:title, or the <title> text before any "|" separator.
func Title(doc *goquery.Document) string {
	sources := []func() string{
		func() string { return doc.Find("article h1").First().Text() },
		func() string { return doc.Find("h1").First().Text() },
		func() string { return doc.Find(`meta[property="og:title"]`).AttrOr("content", "") },
		func() string {
			title, _, _ := strings.Cut(doc.Find("title").First().Text(), "|")
			return title
		},
	}
	for _, source := range sources {
		if title := cleanText(source()); title != "" {
			return title
		}
	}
	return UntitledTitle
}

// Description returns the meta description, falling back to og:description.
func Description(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if desc := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); desc != "" {
			return desc
		}
	}
	return ""
}

// cleanText trims whitespace and the zero-width spaces that heading anchor
// links leave behind.
func cleanText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\u200b'
	})
}

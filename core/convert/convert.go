// Package convert turns one rendered documentation page into Markdown plus
// its title and description. It ties the extract and normalize stages
// together and applies the optional raw-tag stripping pass.
package convert

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/extract"
	"github.com/gaurav-prasanna/llmsdocs/core/normalize"
)

// HTMLConverter implements core.Converter.
type HTMLConverter struct {
	extractor  core.Extractor
	normalizer core.Normalizer
	stripHTML  bool
}

// New creates an HTMLConverter. With stripHTML set, raw tags left over after
// conversion are removed outside of code spans.
func New(stripHTML bool) *HTMLConverter {
	return &HTMLConverter{
		extractor:  extract.New(),
		normalizer: normalize.New(),
		stripHTML:  stripHTML,
	}
}

// Convert parses html and returns its Markdown body with the title
// prepended as a level-1 heading. A document without a content region
// yields an empty body.
func (c *HTMLConverter) Convert(html string) (core.ParsedHTML, error) {
	ext, err := c.extractor.Extract(html)
	if err != nil {
		return core.ParsedHTML{Title: extract.UntitledTitle}, fmt.Errorf("extract: %w", err)
	}

	result := core.ParsedHTML{Title: ext.Title, Description: ext.Description}
	if !ext.Found {
		return result, nil
	}

	body, err := c.normalizer.Normalize(ext.HTML)
	if err != nil {
		return result, fmt.Errorf("normalize: %w", err)
	}
	if c.stripHTML {
		body = normalize.StripRemainingHTML(body)
	}

	if result.Title != "" {
		body = "# " + result.Title + "\n\n" + body
	}
	result.Content = strings.TrimSpace(body)
	return result, nil
}

// HTML converts a document without reporting errors. Failures produce the
// body-less result, so malformed input never aborts a caller.
func HTML(html string, stripHTML bool) core.ParsedHTML {
	result, err := New(stripHTML).Convert(html)
	if err != nil {
		return core.ParsedHTML{Title: result.Title, Description: result.Description}
	}
	return result
}

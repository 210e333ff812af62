// Package inject adds an "LLM Resources" category to the docs sidebar of
// every rendered page, linking to the generated files.
package inject

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/crawl"
	"github.com/gaurav-prasanna/llmsdocs/logging"
	"golang.org/x/net/html"
)

// Marker is the label of the injected category. Pages that already contain
// it are left untouched.
const Marker = "LLM Resources"

// sidebarClass marks the top-level docs sidebar list.
const sidebarClass = "theme-doc-sidebar-menu"

// Injector rewrites HTML files in place.
type Injector struct {
	item   string
	logger *slog.Logger
}

// New creates an Injector whose category links to baseURL/name for each of
// the given file names.
func New(baseURL string, files []string, logger *slog.Logger) *Injector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Injector{item: categoryHTML(strings.TrimSuffix(baseURL, "/"), files), logger: logger}
}

func categoryHTML(baseURL string, files []string) string {
	var b strings.Builder
	b.WriteString(`<li class="theme-doc-sidebar-item-category theme-doc-sidebar-item-category-level-1 menu__list-item">`)
	b.WriteString(`<div class="menu__list-item-collapsible">`)
	b.WriteString(`<a class="menu__link menu__link--sublist menu__link--sublist-caret" role="button" aria-expanded="true" href="#">`)
	fmt.Fprintf(&b, `<span title="%[1]s">%[1]s</span></a></div>`, Marker)
	b.WriteString(`<ul class="menu__list">`)
	for _, name := range files {
		n := html.EscapeString(name)
		fmt.Fprintf(&b, `<li class="theme-doc-sidebar-item-link theme-doc-sidebar-item-link-level-2 menu__list-item">`+
			`<a class="menu__link" href="%s/%s" target="_blank" rel="noopener noreferrer"><span title="%s">%s</span></a></li>`,
			html.EscapeString(baseURL), n, n, n)
	}
	b.WriteString(`</ul></li>`)
	return b.String()
}

// InjectDir updates every HTML file below buildDir and returns the number of
// files changed. Files that cannot be updated are logged and skipped.
func (i *Injector) InjectDir(ctx context.Context, buildDir string) (int, error) {
	files, err := crawl.AllHTML(buildDir)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		ok, err := i.InjectFile(f)
		if err != nil {
			i.logger.Warn("Failed to inject sidebar", logging.Path(f), logging.Error(err))
			continue
		}
		if ok {
			updated++
		}
	}
	i.logger.Info("Injected LLM Resources sidebar", logging.Count(updated))
	return updated, nil
}

// InjectFile appends the category to the sidebar list of one file. It
// reports false without writing when the file has no sidebar or already
// carries the marker.
func (i *Injector) InjectFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	updated, ok, err := i.Inject(string(data))
	if err != nil || !ok {
		return false, err
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Inject returns page with the category inserted as the last item of the
// sidebar list. Everything outside the inserted item is kept byte for byte.
func (i *Injector) Inject(page string) (string, bool, error) {
	if strings.Contains(page, Marker) {
		return page, false, nil
	}

	end, err := sidebarEnd(page)
	if err != nil {
		return page, false, fmt.Errorf("parsing HTML: %w", err)
	}
	if end < 0 {
		return page, false, nil
	}
	return page[:end] + i.item + page[end:], true, nil
}

// sidebarEnd returns the byte offset of the closing </ul> of the first
// sidebar list, or -1 when the page has none.
func sidebarEnd(page string) (int, error) {
	z := html.NewTokenizer(strings.NewReader(page))
	offset, depth := 0, 0
	for {
		tt := z.Next()
		size := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return -1, err
			}
			return -1, nil
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "ul" {
				break
			}
			if depth > 0 {
				depth++
			} else if hasAttr && isSidebar(z) {
				depth = 1
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "ul" && depth > 0 {
				depth--
				if depth == 0 {
					return offset, nil
				}
			}
		}
		offset += size
	}
}

func isSidebar(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == sidebarClass {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}

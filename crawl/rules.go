// Package crawl: build output filtering rules.
// Decides which rendered files are documentation pages and how a file's
// location maps to the URL path it is served under.
package crawl

import (
	"path"
	"strings"
)

// skippedSegments are directories whose pages are never documentation.
var skippedSegments = map[string]bool{
	"search": true,
	"assets": true,
}

// IsSkipped reports whether a build-relative, slash-separated HTML path is
// excluded from discovery: any 404.html and anything below a search/ or
// assets/ directory.
func IsSkipped(rel string) bool {
	if path.Base(rel) == "404.html" {
		return true
	}
	segs := strings.Split(rel, "/")
	for _, seg := range segs[:len(segs)-1] {
		if skippedSegments[seg] {
			return true
		}
	}
	return false
}

// URLPath maps a build-relative, slash-separated HTML path to the URL path
// the page is served under: the .html suffix is dropped, x/index becomes x,
// index becomes /, and the result always starts with a slash.
func URLPath(rel string) string {
	p := strings.TrimSuffix(rel, ".html")
	switch {
	case p == "index":
		p = "/"
	case strings.HasSuffix(p, "/index"):
		p = strings.TrimSuffix(p, "/index")
		if p == "" {
			p = "/"
		}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// FilePath returns the Markdown file path for a URL path as used by pages
// found without a sidebar: the leading slash is dropped and the root maps to
// index.md.
func FilePath(urlPath string) string {
	p := strings.TrimPrefix(urlPath, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}
	return p + ".md"
}

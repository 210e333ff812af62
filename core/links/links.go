// Package links rewrites internal Markdown links into absolute URLs that
// point at the Markdown sibling of the target page, and reports links that
// resolve to no known page.
package links

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// inlineLink matches [text](target). Reference-style links and raw anchors
// are left alone.
var inlineLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// Transform rewrites every inline link in markdown relative to the page at
// currentURLPath. Fenced blocks and code spans are left untouched.
func Transform(markdown, baseURL, currentURLPath string) string {
	return sanitize.OutsideCode(markdown, func(text string) string {
		return inlineLink.ReplaceAllStringFunc(text, func(m string) string {
			sub := inlineLink.FindStringSubmatch(m)
			return "[" + sub[1] + "](" + TransformSingle(sub[2], baseURL, currentURLPath) + ")"
		})
	})
}

// TransformSingle rewrites one link target. External, anchor-only, mailto,
// tel and data targets are returned unchanged; everything else becomes
// {baseURL}{absolute path}.md with any fragment kept.
func TransformSingle(href, baseURL, currentURLPath string) string {
	if isExternal(href) || isPassthrough(href) {
		return href
	}

	base := strings.TrimSuffix(baseURL, "/")
	clean := stripBasePath(href, base)
	return base + ToMarkdownPath(Resolve(clean, currentURLPath))
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "//")
}

func isPassthrough(href string) bool {
	for _, prefix := range []string{"#", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// stripBasePath removes the site's path prefix (the path component of
// baseURL) from href. Built sites emit links that already include it.
func stripBasePath(href, baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	basePath := strings.TrimSuffix(u.Path, "/")
	if basePath == "" {
		return href
	}
	switch {
	case href == basePath:
		return "/"
	case strings.HasPrefix(href, basePath+"/"), strings.HasPrefix(href, basePath+"#"):
		rest := strings.TrimPrefix(href, basePath)
		if strings.HasPrefix(rest, "#") {
			return "/" + rest
		}
		return rest
	}
	return href
}

// Resolve turns href into an absolute site path. Absolute hrefs are returned
// as is. A "./" href resolves below the current page, since a page URL is
// also the parent of its own children; other relative hrefs resolve against
// the directory containing the current page.
func Resolve(href, currentURLPath string) string {
	if strings.HasPrefix(href, "/") {
		return href
	}

	pathPart, fragment, hasFragment := strings.Cut(href, "#")

	dir := path.Dir(currentURLPath)
	if strings.HasPrefix(href, "./") {
		dir = currentURLPath
	}

	var resolved []string
	for _, seg := range append(splitPath(dir), splitPath(pathPart)...) {
		switch seg {
		case ".":
		case "..":
			if len(resolved) > 0 {
				resolved = resolved[:len(resolved)-1]
			}
		default:
			resolved = append(resolved, seg)
		}
	}

	out := "/" + strings.Join(resolved, "/")
	if hasFragment && fragment != "" {
		out += "#" + fragment
	}
	return out
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// ToMarkdownPath maps a site path to the path of its Markdown file:
// trailing slashes and .html are dropped, the root becomes /index, and the
// file extension becomes .md.
func ToMarkdownPath(urlPath string) string {
	pathPart, fragment, hasFragment := strings.Cut(urlPath, "#")

	clean := strings.TrimSuffix(pathPart, "/")
	clean = strings.TrimSuffix(clean, ".html")
	if clean == "" || clean == "/" {
		clean = "/index"
	}

	if ext := path.Ext(clean); ext == "" {
		clean += ".md"
	} else if ext != ".md" {
		clean = strings.TrimSuffix(clean, ext) + ".md"
	}

	if hasFragment && fragment != "" {
		clean += "#" + fragment
	}
	return clean
}

// ExtractInternal returns the destinations of internal links in markdown.
// Links inside code spans and fenced blocks are not links and are skipped.
func ExtractInternal(markdown string) []string {
	src := []byte(markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if dest != "" && !isExternal(dest) && !strings.HasPrefix(dest, "#") && !strings.HasPrefix(dest, "mailto:") {
			out = append(out, dest)
		}
		return gmast.WalkContinue, nil
	})
	return out
}

// Report lists the internal links of a page that matched no known path.
type Report struct {
	Valid  bool
	Broken []string
}

// Validate resolves every internal link in markdown against currentURLPath
// and checks it against the known paths. A link matches when its Markdown
// path, with or without the .md extension, or its /index.md form is known,
// with or without a leading slash.
func Validate(markdown string, available map[string]bool, currentURLPath string) Report {
	report := Report{Valid: true}
	for _, href := range ExtractInternal(markdown) {
		target, _, _ := strings.Cut(href, "#")
		md := ToMarkdownPath(Resolve(target, currentURLPath))
		bare := strings.TrimSuffix(md, ".md")

		found := false
		for _, v := range []string{md, bare, bare + "/index.md", bare + ".md"} {
			if available[v] || available[strings.TrimPrefix(v, "/")] {
				found = true
				break
			}
		}
		if !found {
			report.Broken = append(report.Broken, href)
		}
	}
	report.Valid = len(report.Broken) == 0
	return report
}

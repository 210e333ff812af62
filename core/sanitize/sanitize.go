// Package sanitize provides the pure string transforms shared by the
// pipeline: filename and slug sanitation, title casing of identifiers, and
// HTML-tag stripping that leaves code spans untouched.
package sanitize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	filenameUnsafe = regexp.MustCompile(`[^a-z0-9\-_.]`)
	slugUnsafe     = regexp.MustCompile(`[^a-z0-9\-_/]`)
	dashRuns       = regexp.MustCompile(`-+`)
	wordSeparators = regexp.MustCompile(`[-_]`)
	camelBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)

	tocUnsafe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)

	fencedCode  = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCode  = regexp.MustCompile("`[^`]+`")
	htmlTag     = regexp.MustCompile(`<[^>]*>`)
	placeholder = regexp.MustCompile(`\x00(CODEBLOCK|INLINECODE)(\d+)\x00`)
)

// Filename lower-cases s and replaces every character outside [a-z0-9-_.]
// with a hyphen. Hyphen runs collapse and edge hyphens are trimmed.
func Filename(s string) string {
	return collapseDashes(filenameUnsafe.ReplaceAllString(strings.ToLower(s), "-"))
}

// Slug is Filename for paths: slashes are kept.
func Slug(s string) string {
	return collapseDashes(slugUnsafe.ReplaceAllString(strings.ToLower(s), "-"))
}

func collapseDashes(s string) string {
	return strings.Trim(dashRuns.ReplaceAllString(s, "-"), "-")
}

// titleCase upper-cases the first letter of every word and leaves the rest
// of each word as written.
func titleCase(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// DocIDToTitle derives a display title from the last segment of a doc ID.
// Example: "getting-started/first_steps" → "First Steps"
func DocIDToTitle(docID string) string {
	last := docID
	if i := strings.LastIndex(docID, "/"); i >= 0 && i < len(docID)-1 {
		last = docID[i+1:]
	}
	return titleCase(wordSeparators.ReplaceAllString(last, " "))
}

// SectionLabel turns a sidebar group key into a human-readable label.
// Example: "apiReference" → "Api Reference"
func SectionLabel(name string) string {
	s := wordSeparators.ReplaceAllString(name, " ")
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	return titleCase(s)
}

// CleanMarkdown collapses runs of blank lines and trims the result.
func CleanMarkdown(content string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(content, "\n\n"))
}

// TOCSlug produces the anchor slug used by table-of-contents links.
func TOCSlug(text string) string {
	s := tocUnsafe.ReplaceAllString(strings.ToLower(text), "")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// StripHTMLTags removes HTML tags that are not inside a fenced code block or
// an inline code span. Running it on its own output is a no-op.
func StripHTMLTags(content string) string {
	return OutsideCode(content, func(s string) string {
		return htmlTag.ReplaceAllString(s, "")
	})
}

// OutsideCode applies fn to content with fenced code blocks and inline code
// spans swapped out for placeholders, then restores them. fn must leave the
// placeholders intact.
func OutsideCode(content string, fn func(string) string) string {
	var blocks, inline []string

	processed := fencedCode.ReplaceAllStringFunc(content, func(m string) string {
		blocks = append(blocks, m)
		return fmt.Sprintf("\x00CODEBLOCK%d\x00", len(blocks)-1)
	})
	processed = inlineCode.ReplaceAllStringFunc(processed, func(m string) string {
		inline = append(inline, m)
		return fmt.Sprintf("\x00INLINECODE%d\x00", len(inline)-1)
	})

	processed = fn(processed)

	// Restore in reverse order of protection.
	processed = restore(processed, "INLINECODE", inline)
	return restore(processed, "CODEBLOCK", blocks)
}

func restore(s, kind string, saved []string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		if sub[1] != kind {
			return m
		}
		i, err := strconv.Atoi(sub[2])
		if err != nil || i >= len(saved) {
			return m
		}
		return saved[i]
	})
}

// Package normalize implements the Normalizer interface.
// It converts the cleaned content region of a documentation page into
// Markdown using html-to-markdown, with renderers tuned for static
// documentation output: fenced code with language tags, inline code with
// safe backtick fences, admonitions as callouts, and pipe tables.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
	"golang.org/x/net/html"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer with the documentation rule set registered.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("-"),
				commonmark.WithEmDelimiter("_"),
				commonmark.WithStrongDelimiter("**"),
			),
		),
	)

	// PriorityEarly runs before the commonmark plugin (PriorityStandard).
	conv.Register.RendererFor("pre", converter.TagTypeBlock, renderFencedCode, converter.PriorityEarly)
	conv.Register.RendererFor("code", converter.TagTypeInline, renderInlineCode, converter.PriorityEarly)
	conv.Register.RendererFor("div", converter.TagTypeBlock, renderAdmonition, converter.PriorityEarly)
	conv.Register.RendererFor("table", converter.TagTypeBlock, renderTable, converter.PriorityEarly)
	for _, tag := range []string{"nav", "footer", "aside"} {
		conv.Register.RendererFor(tag, converter.TagTypeBlock, renderNothing, converter.PriorityEarly)
	}

	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts a cleaned HTML fragment into tidy Markdown.
func (n *MarkdownNormalizer) Normalize(htmlFragment string) (string, error) {
	if strings.TrimSpace(htmlFragment) == "" {
		return "", nil
	}
	markdown, err := n.conv.ConvertString(htmlFragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return Cleanup(markdown), nil
}

// StripRemainingHTML removes raw tags the converter left behind, leaving
// fenced and inline code untouched.
func StripRemainingHTML(markdown string) string {
	return sanitize.StripHTMLTags(markdown)
}

var (
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Cleanup tidies converter output: trailing whitespace is removed from every
// line, runs of blank lines collapse to one, blank lines directly inside
// code fences are dropped, and the result ends with exactly one newline.
func Cleanup(markdown string) string {
	markdown = trailingSpace.ReplaceAllString(markdown, "")
	markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
	markdown = tightenFences(markdown)
	return strings.TrimSpace(markdown) + "\n"
}

// tightenFences drops blank lines that directly follow an opening fence or
// directly precede a closing fence. Fences inside a quote (callouts) are
// matched after their ">" marker; a blank quoted line is ">" alone.
func tightenFences(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	fence, marker := "", ""
	openedAt := 0
	skipBlank := false
	for _, line := range lines {
		if fence == "" {
			quote, body := splitQuote(line)
			if open := openingFence(strings.TrimSpace(body)); open != "" {
				fence, marker = open, strings.TrimRight(quote, " ")
				openedAt = len(out) + 1
				skipBlank = true
			}
			out = append(out, line)
			continue
		}

		inner := strings.TrimSpace(strings.TrimPrefix(line, marker))
		switch {
		case isClosingFence(inner, fence):
			for len(out) > openedAt && isBlankLine(out[len(out)-1], marker) {
				out = out[:len(out)-1]
			}
			fence, skipBlank = "", false
			out = append(out, line)
		case skipBlank && inner == "":
		default:
			skipBlank = false
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// splitQuote splits a line into its leading blockquote marker (">" and
// spaces) and the rest.
func splitQuote(line string) (quote, body string) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, ">") {
		return "", line
	}
	i := len(line) - len(trimmed)
	for i < len(line) && (line[i] == '>' || line[i] == ' ') {
		i++
	}
	return line[:i], line[i:]
}

// openingFence returns the backtick run that opens a fenced block when the
// whole line is a fence: three or more backticks and an info string
// without backticks. Lines that merely start with a code span do not count.
func openingFence(trimmed string) string {
	n := leadingBackticks(trimmed)
	if len(n) < 3 || strings.Contains(trimmed[len(n):], "`") {
		return ""
	}
	return n
}

func isBlankLine(line, marker string) bool {
	return strings.TrimSpace(strings.TrimPrefix(line, marker)) == ""
}

func leadingBackticks(s string) string {
	i := 0
	for i < len(s) && s[i] == '`' {
		i++
	}
	return s[:i]
}

func isClosingFence(trimmed, fence string) bool {
	return len(trimmed) >= len(fence) && strings.Trim(trimmed, "`") == ""
}

// longestBacktickRun returns the length of the longest run of backticks in s.
func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

func renderNothing(_ converter.Context, _ converter.Writer, _ *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

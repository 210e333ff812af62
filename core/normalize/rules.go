package normalize

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"
)

var languageClass = regexp.MustCompile(`language-(\w+)`)

// renderFencedCode renders <pre><code class="language-x"> as a fenced block.
// Documentation renderers use <br> for line breaks inside highlighted code,
// so those become newlines; every other tag is dropped.
func renderFencedCode(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	code := firstElementChild(n)
	if code == nil || code.Data != "code" {
		return converter.RenderTryNext
	}

	lang := ""
	if m := languageClass.FindStringSubmatch(dom.GetAttributeOr(code, "class", "")); m != nil {
		lang = m[1]
	}
	text := strings.TrimSpace(codeText(code))

	fence := strings.Repeat("`", max(3, longestBacktickRun(text)+1))
	w.WriteString("\n\n")
	w.WriteString(fence + lang + "\n")
	w.WriteString(text)
	w.WriteString("\n" + fence + "\n\n")
	return converter.RenderSuccess
}

// renderInlineCode wraps <code> outside <pre> in a backtick fence one longer
// than any backtick run in its text.
func renderInlineCode(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if n.Parent != nil && n.Parent.Type == html.ElementNode && n.Parent.Data == "pre" {
		return converter.RenderTryNext
	}

	text := codeText(n)
	if strings.TrimSpace(text) == "" {
		return converter.RenderSuccess
	}
	text = strings.ReplaceAll(text, "\n", " ")

	fence := strings.Repeat("`", longestBacktickRun(text)+1)
	pad := ""
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		pad = " "
	}
	w.WriteString(fence + pad + text + pad + fence)
	return converter.RenderSuccess
}

// admonitionType picks the callout keyword from the class attribute. The
// checks run in a fixed order and the first match wins.
func admonitionType(class string) string {
	switch {
	case strings.Contains(class, "warning") || strings.Contains(class, "caution"):
		return "WARNING"
	case strings.Contains(class, "tip"):
		return "TIP"
	case strings.Contains(class, "danger") || strings.Contains(class, "error"):
		return "CAUTION"
	default:
		return "NOTE"
	}
}

func isAdmonition(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	class := dom.GetAttributeOr(n, "class", "")
	return strings.Contains(class, "admonition") || strings.Contains(class, "alert")
}

func isAdmonitionHeading(n *html.Node) bool {
	class := dom.GetAttributeOr(n, "class", "")
	return strings.Contains(class, "admonitionHeading") || strings.Contains(class, "admonition-heading")
}

// renderAdmonition renders an admonition container as a quoted callout:
//
//	> [!TIP]
//	> content
func renderAdmonition(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if !isAdmonition(n) {
		return converter.RenderTryNext
	}
	// Inner wrappers such as "admonitionContent" belong to the outer callout.
	for p := n.Parent; p != nil; p = p.Parent {
		if isAdmonition(p) {
			return converter.RenderTryNext
		}
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && isAdmonitionHeading(c) {
			n.RemoveChild(c)
		}
		c = next
	}

	var buf bytes.Buffer
	ctx.RenderChildNodes(ctx, &buf, n)

	// Blank runs must collapse before quoting; "> " lines no longer look blank.
	lines := strings.Split(strings.TrimSpace(Cleanup(buf.String())), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+line, " ")
	}

	w.WriteString("\n\n> [!" + admonitionType(dom.GetAttributeOr(n, "class", "")) + "]\n")
	w.WriteString(strings.Join(lines, "\n"))
	w.WriteString("\n\n")
	return converter.RenderSuccess
}

// renderTable renders a table as pipe rows. Header rows are followed by a
// separator row with one "--- |" per header cell.
func renderTable(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	rows := tableRows(n)
	if len(rows) == 0 {
		return converter.RenderSuccess
	}
	hasHead := false
	for _, r := range rows {
		if r.Parent != nil && r.Parent.Data == "thead" {
			hasHead = true
			break
		}
	}

	var out strings.Builder
	for i, row := range rows {
		cells := rowCells(row)
		out.WriteString("|")
		for _, cell := range cells {
			var buf bytes.Buffer
			ctx.RenderChildNodes(ctx, &buf, cell)
			text := strings.TrimSpace(strings.ReplaceAll(buf.String(), "\n", " "))
			out.WriteString(" " + text + " |")
		}
		out.WriteString("\n")

		header := row.Parent != nil && row.Parent.Data == "thead"
		if !hasHead && i == 0 && allHeaderCells(cells) {
			header = true
		}
		if header {
			count := 0
			for _, c := range cells {
				if c.Data == "th" {
					count++
				}
			}
			out.WriteString("|" + strings.Repeat(" --- |", count) + "\n")
		}
	}

	w.WriteString("\n\n")
	w.WriteString(out.String())
	w.WriteString("\n")
	return converter.RenderSuccess
}

// tableRows returns the rows of a table in document order, without
// descending into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, c)
		}
	}
	return cells
}

func allHeaderCells(cells []*html.Node) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if c.Data != "th" {
			return false
		}
	}
	return true
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		}
	}
	return nil
}

// codeText collects the text of a code element. <br> becomes a newline and
// all other markup is dropped; entities were decoded by the HTML parser.
func codeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if c.Data == "br" {
					b.WriteByte('\n')
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

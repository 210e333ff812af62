package convert

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/llmsdocs/core/extract"
	"github.com/gaurav-prasanna/llmsdocs/core/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html>
<head>
  <title>Getting Started | Acme Docs</title>
  <meta name="description" content="Install and run Acme.">
</head>
<body>
<nav class="navbar"><a href="/">Acme</a></nav>
<main>
<article>
  <nav class="theme-doc-breadcrumbs"><a href="/">Home</a></nav>
  <div class="theme-doc-markdown markdown">
    <header><h1>Getting Started</h1></header>
    <p>Run the <code>acme</code> binary.</p>
    <pre class="prism-code"><code class="language-go">if x {
  y()
}</code></pre>
    <div class="theme-admonition theme-admonition-tip alert alert--success">
      <div class="admonitionHeading_Gvgb">tip</div>
      <div class="admonitionContent_BuS1"><p>Use the cache.</p></div>
    </div>
    <table>
      <thead><tr><th>Flag</th><th>Meaning</th></tr></thead>
      <tbody><tr><td>-v</td><td>verbose</td></tr></tbody>
    </table>
  </div>
  <footer class="theme-doc-footer">Edit this page</footer>
</article>
</main>
</body>
</html>`

func TestConvert_Page(t *testing.T) {
	got, err := New(true).Convert(page)
	require.NoError(t, err)

	assert.Equal(t, "Getting Started", got.Title)
	assert.Equal(t, "Install and run Acme.", got.Description)

	assert.True(t, strings.HasPrefix(got.Content, "# Getting Started\n\n"), got.Content)
	assert.Equal(t, 1, strings.Count(got.Content, "Getting Started"))
	assert.Contains(t, got.Content, "Run the `acme` binary.")
	assert.Contains(t, got.Content, "```go\nif x {\n  y()\n}\n```")
	assert.Contains(t, got.Content, "> [!TIP]\n> Use the cache.")
	assert.Contains(t, got.Content, "| Flag | Meaning |\n| --- | --- |\n| -v | verbose |")

	assert.NotContains(t, got.Content, "Home")
	assert.NotContains(t, got.Content, "Edit this page")
	assert.Equal(t, got.Content, strings.TrimSpace(got.Content))
}

func TestConvert_EmptyDocument(t *testing.T) {
	got, err := New(true).Convert("")
	require.NoError(t, err)
	assert.Equal(t, extract.UntitledTitle, got.Title)
	assert.Empty(t, got.Content)
	assert.Empty(t, got.Description)
}

func TestConvert_NoContentRegion(t *testing.T) {
	got := HTML(`<html><head><title>Only Title</title></head><body><div>x</div></body></html>`, true)
	assert.Equal(t, "Only Title", got.Title)
	assert.Empty(t, got.Content)
}

func TestConvert_StripIsIdempotent(t *testing.T) {
	stripped, err := New(true).Convert(page)
	require.NoError(t, err)
	assert.Equal(t, stripped.Content, normalize.StripRemainingHTML(stripped.Content))

	raw, err := New(false).Convert(page)
	require.NoError(t, err)
	assert.Contains(t, raw.Content, "```go\nif x {\n  y()\n}\n```")
}

func TestHTML_MultiParagraphAdmonition(t *testing.T) {
	got := HTML(`<html><body><article><h1>Upgrade</h1>`+
		`<div class="theme-admonition theme-admonition-warning alert alert--warning">`+
		`<div class="admonitionHeading_Gvgb">warning</div>`+
		`<div class="admonitionContent_BuS1"><p>Back up first.</p><p>Then upgrade.</p></div>`+
		`</div></article></body></html>`, true)

	assert.Equal(t, "# Upgrade\n\n> [!WARNING]\n> Back up first.\n>\n> Then upgrade.", got.Content)
}

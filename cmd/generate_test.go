package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/llmsdocs/config"
	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSidebar = `{
  "docs": [
    "intro",
    {"type": "category", "label": "Guides", "items": ["guides/setup", "guides/missing"]}
  ]
}`

const sidebarHTML = `<nav><ul class="theme-doc-sidebar-menu menu__list"><li><a href="/intro">Intro</a></li></ul></nav>`

func writeSite(t *testing.T) (buildDir, sidebarPath string) {
	t.Helper()
	root := t.TempDir()
	buildDir = filepath.Join(root, "build")
	pages := map[string]string{
		"intro.html": `<html><head><meta name="description" content="Start here."></head><body>` + sidebarHTML +
			`<article><h1>Introduction</h1><p>See <a href="/guides/setup">setup</a>.</p></article></body></html>`,
		"guides/setup.html": `<html><body>` + sidebarHTML +
			`<article><h1>Setup</h1><pre><code class="language-sh">make install</code></pre></article></body></html>`,
	}
	for rel, body := range pages {
		p := filepath.Join(buildDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	sidebarPath = filepath.Join(root, "sidebars.json")
	require.NoError(t, os.WriteFile(sidebarPath, []byte(testSidebar), 0o644))
	return buildDir, sidebarPath
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	buildDir, sidebarPath := writeSite(t)
	cfg := config.Default()
	cfg.BuildDir = buildDir
	cfg.SidebarPath = sidebarPath
	cfg.OutputDir = filepath.Join(t.TempDir(), "llm-docs")
	cfg.BaseURL = "https://docs.acme.io"
	cfg.ProductName = "Acme"
	require.NoError(t, cfg.Validate())
	return cfg
}

func run(t *testing.T, cfg *config.Config) (*summary, string) {
	t.Helper()
	t.Setenv("GITHUB_ACTIONS", "")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sum, err := generate(context.Background(), cfg, logger, &logs)
	require.NoError(t, err)
	return sum, logs.String()
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	outputs := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", outputs)

	sum, logs := run(t, cfg)

	assert.Equal(t, 2, sum.Pages)
	assert.Equal(t, 2, sum.Files)
	assert.Equal(t, 1, sum.Sections)
	assert.Contains(t, logs, "Could not find HTML file")
	assert.Contains(t, logs, "source_bytes=")

	index := readFile(t, filepath.Join(cfg.OutputDir, "llms.txt"))
	assert.True(t, strings.HasPrefix(index, "# Acme Documentation\n"))
	assert.Contains(t, index, "## Docs\n\n- [Introduction](https://docs.acme.io/intro.md): Start here.\n### Guides\n\n  - [Setup](https://docs.acme.io/guides/setup.md)\n")

	full := readFile(t, filepath.Join(cfg.OutputDir, "llms-full.txt"))
	assert.Equal(t, 2, strings.Count(full, "<page>"))
	assert.Contains(t, full, "[setup](https://docs.acme.io/guides/setup.md)")
	assert.Contains(t, full, "```sh\nmake install\n```")

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "llms.json"))
	assert.Equal(t, "# Setup\n\n```sh\nmake install\n```", readFile(t, filepath.Join(cfg.OutputDir, "markdown", "guides", "setup.md")))

	zr, err := zip.OpenReader(sum.ArchivePath)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"markdown/intro.md", "markdown/guides/setup.md"}, names)

	gh := readFile(t, outputs)
	assert.Contains(t, gh, "llms_txt_path="+filepath.Join(cfg.OutputDir, "llms.txt")+"\n")
	assert.Contains(t, gh, "files_generated=2\n")
	assert.Contains(t, gh, "sections_count=1\n")

	assert.NotContains(t, readFile(t, filepath.Join(cfg.BuildDir, "intro.html")), "LLM Resources")
}

func TestGenerate_FallbackDiscoveryAndTarball(t *testing.T) {
	cfg := testConfig(t)
	cfg.SidebarPath = filepath.Join(t.TempDir(), "absent.json")
	cfg.ArchiveFormat = config.ArchiveTarGz
	cfg.InjectSidebar = true
	t.Setenv("GITHUB_OUTPUT", "")

	sum, logs := run(t, cfg)

	assert.Contains(t, logs, "Sidebar not found")
	assert.Equal(t, 2, sum.Pages)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "markdown.tar.gz"), sum.ArchivePath)
	assert.FileExists(t, sum.ArchivePath)

	index := readFile(t, filepath.Join(cfg.OutputDir, "llms.txt"))
	assert.Contains(t, index, "## Documentation\n")
	assert.Contains(t, index, "https://docs.acme.io/markdown.tar.gz")

	injected := readFile(t, filepath.Join(cfg.BuildDir, "guides", "setup.html"))
	assert.Contains(t, injected, "https://docs.acme.io/markdown.tar.gz")
	assert.Contains(t, injected, "LLM Resources")
}

func TestGenerate_IndexFragments(t *testing.T) {
	cfg := testConfig(t)
	cfg.TableOfContents = true
	cfg.Stats = true
	t.Setenv("GITHUB_OUTPUT", "")

	run(t, cfg)

	index := readFile(t, filepath.Join(cfg.OutputDir, "llms.txt"))
	assert.Contains(t, index, "## Table of Contents\n\n- [Docs](#docs)\n  - [Guides](#guides)\n")
	assert.Contains(t, index, "_This documentation contains 2 pages across 1 sections._")
}

func TestGenerate_MissingBuildDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.BuildDir = filepath.Join(t.TempDir(), "nope")

	_, err := generate(context.Background(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrBuildDirNotFound)
}

func TestGenerate_BadSidebarIsFatal(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SidebarPath, []byte("{not json"), 0o644))

	_, err := generate(context.Background(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrSidebarLoad)
}

func TestSummaryPrint(t *testing.T) {
	var out bytes.Buffer
	(&summary{Pages: 3, Files: 2, Sections: 1, IndexPath: "a", FullPath: "b", ArchivePath: "c", MarkdownDir: "d"}).print(&out)
	assert.Contains(t, out.String(), "Pages processed:  3")
	assert.Contains(t, out.String(), "Files generated:  2")
}

func TestConvertPage(t *testing.T) {
	buildDir, _ := writeSite(t)
	file := filepath.Join(buildDir, "intro.html")

	page, err := convertPage(file, true, "", "/")
	require.NoError(t, err)
	assert.Equal(t, "Introduction", page.Title)
	assert.Equal(t, "Start here.", page.Description)
	assert.Equal(t, "# Introduction\n\nSee [setup](/guides/setup).", page.Content)

	page, err = convertPage(file, true, "https://docs.acme.io", "/intro")
	require.NoError(t, err)
	assert.Equal(t, "# Introduction\n\nSee [setup](https://docs.acme.io/guides/setup.md).", page.Content)

	_, err = convertPage(filepath.Join(buildDir, "nope.html"), true, "", "/")
	require.ErrorIs(t, err, os.ErrNotExist)
}

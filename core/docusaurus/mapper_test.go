package docusaurus

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sidebarJSON = `{
  "docs": [
    "intro",
    {
      "type": "category",
      "label": "Guides",
      "link": {"type": "doc", "id": "guides/index"},
      "items": ["guides/setup", "missing"]
    }
  ]
}`

var buildFiles = map[string]string{
	"intro.html": `<html><head><meta name="description" content="Start here."></head><body>
<article><h1>Introduction</h1><p>Read the <a href="/guides/setup">Setup</a> guide.</p></article></body></html>`,
	"guides/index.html": `<html><body><article><p>All guides.</p></article></body></html>`,
	"guides/setup.html": `<html><body><article><h1>Setup</h1><p>Back to <a href="../intro">intro</a>.</p></article></body></html>`,
	"404.html":          `<html><body><article><h1>Not found</h1></article></body></html>`,
}

func writeBuild(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range buildFiles {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func newMapper(t *testing.T, dir string, logs *bytes.Buffer) *Mapper {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(Options{BuildDir: dir, BaseURL: "https://x.io", StripHTML: true}, logger)
}

func parseSidebar(t *testing.T) []*core.Section {
	t.Helper()
	sections, err := sidebar.New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Parse([]byte(sidebarJSON))
	require.NoError(t, err)
	return sections
}

// failingFetcher fails for paths ending with fail.
type failingFetcher struct {
	core.Fetcher
	fail string
}

func (f failingFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if strings.HasSuffix(filepath.ToSlash(path), f.fail) {
		return nil, errors.New("disk on fire")
	}
	return f.Fetcher.Fetch(ctx, path)
}

func TestProcessBuild_EnrichesPages(t *testing.T) {
	var logs bytes.Buffer
	sections := parseSidebar(t)

	docs, err := newMapper(t, writeBuild(t), &logs).ProcessBuild(context.Background(), sections)
	require.NoError(t, err)

	assert.Equal(t, 3, docs.TotalPages)
	assert.Equal(t, []string{"intro", "guides/index", "guides/setup"}, docs.Order)
	assert.NotContains(t, docs.Pages, "missing")

	intro := docs.Pages["intro"]
	assert.Equal(t, "Introduction", intro.Title)
	assert.Equal(t, "Start here.", intro.Description)
	assert.True(t, strings.HasPrefix(intro.Content, "# Introduction\n\n"))
	assert.Contains(t, intro.Content, "[Setup](https://x.io/guides/setup.md)")

	setup := docs.Pages["guides/setup"]
	assert.Contains(t, setup.Content, "[intro](https://x.io/intro.md)")

	guides := sections[0].Subsections[0]
	require.NotNil(t, guides.IndexPage)
	assert.Equal(t, "Guides", guides.IndexPage.Title, "navigation title kept when the page has none")
	assert.Contains(t, guides.IndexPage.Content, "All guides.")

	assert.Same(t, docs.Pages["guides/setup"], guides.Pages[0])
	assert.Empty(t, guides.Pages[1].Content)

	assert.Contains(t, logs.String(), "Could not find HTML file")
	assert.Contains(t, logs.String(), "page=missing")
}

func TestProcessBuild_ConversionFailureSkipsPage(t *testing.T) {
	var logs bytes.Buffer
	m := newMapper(t, writeBuild(t), &logs)
	m.Fetcher = failingFetcher{Fetcher: m.Fetcher, fail: "guides/setup.html"}

	docs, err := m.ProcessBuild(context.Background(), parseSidebar(t))
	require.NoError(t, err)

	assert.Equal(t, 2, docs.TotalPages)
	assert.NotContains(t, docs.Pages, "guides/setup")
	assert.Contains(t, logs.String(), "Failed to process page")
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestProcessBuild_MissingBuildDir(t *testing.T) {
	m := newMapper(t, filepath.Join(t.TempDir(), "absent"), &bytes.Buffer{})
	_, err := m.ProcessBuild(context.Background(), parseSidebar(t))
	require.ErrorIs(t, err, core.ErrBuildDirNotFound)
}

func TestProcessBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newMapper(t, writeBuild(t), &bytes.Buffer{}).ProcessBuild(ctx, parseSidebar(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSyncSections_ReplacesByID(t *testing.T) {
	stale := &core.Page{ID: "a"}
	staleIndex := &core.Page{ID: "idx"}
	sections := []*core.Section{{
		Pages: []*core.Page{stale, {ID: "untouched"}},
		Subsections: []*core.Section{{
			IndexPage: staleIndex,
		}},
	}}
	fresh := &core.Page{ID: "a", Content: "new"}
	freshIndex := &core.Page{ID: "idx", Content: "index"}

	SyncSections(sections, map[string]*core.Page{"a": fresh, "idx": freshIndex})

	assert.Same(t, fresh, sections[0].Pages[0])
	assert.Equal(t, "untouched", sections[0].Pages[1].ID)
	assert.Same(t, freshIndex, sections[0].Subsections[0].IndexPage)
}

func TestDiscoverFromBuild(t *testing.T) {
	docs, err := newMapper(t, writeBuild(t), &bytes.Buffer{}).DiscoverFromBuild(context.Background())
	require.NoError(t, err)

	require.Len(t, docs.Sections, 1)
	section := docs.Sections[0]
	assert.Equal(t, FallbackSection, section.Name)
	assert.Equal(t, FallbackLabel, section.Label)
	assert.Empty(t, section.Subsections)

	require.Len(t, section.Pages, 3)
	ids := []string{section.Pages[0].ID, section.Pages[1].ID, section.Pages[2].ID}
	assert.Equal(t, []string{"guides/index", "guides/setup", "intro"}, ids)

	setup := section.Pages[1]
	assert.Equal(t, "/guides/setup", setup.URLPath)
	assert.Equal(t, "guides/setup.md", setup.FilePath)
	assert.Equal(t, "Setup", setup.Title)
	assert.Equal(t, 1, setup.Order)
	assert.Equal(t, 0, setup.Depth)
	assert.Contains(t, setup.Content, "[intro](https://x.io/intro.md)")

	assert.Equal(t, 3, docs.TotalPages)
}

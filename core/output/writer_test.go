package output

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWriter(t *testing.T, logs *bytes.Buffer) *Writer {
	t.Helper()
	w, err := New(filepath.Join(t.TempDir(), "out"), slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, err)
	return w
}

func docsWith(pages ...*core.Page) *core.ProcessedDocs {
	docs := core.NewProcessedDocs(nil)
	for _, p := range pages {
		docs.Add(p)
	}
	return docs
}

func read(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestWriteFile_CreatesParents(t *testing.T) {
	w := newWriter(t, &bytes.Buffer{})
	p, err := w.WriteFile("a/b/c.txt", []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "a", "b", "c.txt"), p)
	assert.Equal(t, "hi", read(t, p))
}

func TestWriteMarkdownFiles_SkipsBlank(t *testing.T) {
	var logs bytes.Buffer
	w := newWriter(t, &logs)
	docs := docsWith(
		&core.Page{ID: "intro", FilePath: "intro.md", Content: "# Intro"},
		&core.Page{ID: "guides/setup", FilePath: "guides/setup.md", Content: "# Setup"},
		&core.Page{ID: "blank", FilePath: "blank.md", Content: "  \n "},
	)

	n, err := w.WriteMarkdownFiles(docs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "# Intro", read(t, filepath.Join(w.MarkdownRoot(), "intro.md")))
	assert.Equal(t, "# Setup", read(t, filepath.Join(w.MarkdownRoot(), "guides", "setup.md")))
	assert.NoFileExists(t, filepath.Join(w.MarkdownRoot(), "blank.md"))
	assert.Contains(t, logs.String(), "Skipping empty page")
}

func TestWriteMarkdownFiles_RejectsEscapingPaths(t *testing.T) {
	var logs bytes.Buffer
	w := newWriter(t, &logs)
	docs := docsWith(
		&core.Page{ID: "../../escape", FilePath: "../../escape.md", Content: "# Out"},
		&core.Page{ID: "a/../../up", FilePath: "a/../../up.md", Content: "# Up"},
		&core.Page{ID: "a/../ok", FilePath: "a/../ok.md", Content: "# Ok"},
	)

	n, err := w.WriteMarkdownFiles(docs)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	parent := filepath.Dir(w.OutputDir)
	assert.NoFileExists(t, filepath.Join(parent, "escape.md"))
	assert.NoFileExists(t, filepath.Join(w.OutputDir, "up.md"))
	assert.Equal(t, "# Ok", read(t, filepath.Join(w.MarkdownRoot(), "ok.md")))
	assert.Contains(t, logs.String(), "Skipping page outside the markdown directory")
}

func TestWriteDirectoryIndexes(t *testing.T) {
	w := newWriter(t, &bytes.Buffer{})
	docs := docsWith(
		&core.Page{ID: "intro", Title: "Intro", FilePath: "intro.md", Content: "x"},
		&core.Page{ID: "getting-started/install", Title: "Install", Description: "How to install.", FilePath: "getting-started/install.md", Content: "x"},
		&core.Page{ID: "getting-started/run", Title: "Run", FilePath: "getting-started/run.md", Content: "x"},
		&core.Page{ID: "api/index", Title: "API", FilePath: "api/index.md", Content: "x"},
		&core.Page{ID: "api/auth", Title: "Auth", FilePath: "api/auth.md", Content: "x"},
	)

	n, err := w.WriteDirectoryIndexes(docs)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := "# Getting started\n\n## Pages in this section\n\n" +
		"- [Install](install.md)\n  How to install.\n" +
		"- [Run](run.md)\n"
	assert.Equal(t, want, read(t, filepath.Join(w.MarkdownRoot(), "getting-started", "index.md")))
	assert.NoFileExists(t, filepath.Join(w.MarkdownRoot(), "api", "index.md"))
}

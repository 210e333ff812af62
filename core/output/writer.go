// Package output handles writing generated files under the output
// directory. Per-page Markdown files mirror each page's file path below a
// markdown/ directory.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/logging"
)

// MarkdownDir is the directory below the output directory that holds the
// per-page Markdown files.
const MarkdownDir = "markdown"

// Writer writes generated output to disk.
type Writer struct {
	OutputDir string
	logger    *slog.Logger
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string, logger *slog.Logger) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, logger: logger}, nil
}

// MarkdownRoot returns the directory holding the per-page files.
func (w *Writer) MarkdownRoot() string {
	return filepath.Join(w.OutputDir, MarkdownDir)
}

// WriteFile writes data to rel below the output directory, creating parent
// directories as needed, and returns the full path.
func (w *Writer) WriteFile(rel string, data []byte) (string, error) {
	fullPath := filepath.Join(w.OutputDir, filepath.FromSlash(rel))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// WriteMarkdownFiles writes the content of every converted page to
// markdown/{filePath}. Pages with blank content are skipped. It returns the
// number of files written.
func (w *Writer) WriteMarkdownFiles(docs *core.ProcessedDocs) (int, error) {
	if err := os.MkdirAll(w.MarkdownRoot(), 0755); err != nil {
		return 0, fmt.Errorf("creating markdown directory: %w", err)
	}

	written := 0
	for _, p := range docs.OrderedPages() {
		if strings.TrimSpace(p.Content) == "" {
			w.logger.Debug("Skipping empty page", logging.Page(p.ID))
			continue
		}
		if escapes(p.FilePath) {
			w.logger.Warn("Skipping page outside the markdown directory", logging.Page(p.ID), logging.Path(p.FilePath))
			continue
		}
		if _, err := w.WriteFile(path.Join(MarkdownDir, p.FilePath), []byte(p.Content)); err != nil {
			return written, err
		}
		written++
		w.logger.Debug("Generated markdown file", logging.Path(p.FilePath))
	}
	return written, nil
}

// escapes reports whether a page file path climbs out of the markdown
// directory.
func escapes(filePath string) bool {
	clean := path.Clean(filePath)
	return clean == ".." || strings.HasPrefix(clean, "../")
}

// WriteDirectoryIndexes writes an index.md into every markdown
// subdirectory that has no index page of its own, listing the pages in it.
// It returns the number of indexes written.
func (w *Writer) WriteDirectoryIndexes(docs *core.ProcessedDocs) (int, error) {
	byDir := make(map[string][]*core.Page)
	hasIndex := make(map[string]bool)
	for _, p := range docs.OrderedPages() {
		if strings.TrimSpace(p.Content) == "" || escapes(p.FilePath) {
			continue
		}
		dir := path.Dir(p.FilePath)
		if dir == "." {
			continue
		}
		if path.Base(p.FilePath) == "index.md" {
			hasIndex[dir] = true
			continue
		}
		byDir[dir] = append(byDir[dir], p)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		if !hasIndex[dir] {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		data := []byte(DirectoryIndex(dir, byDir[dir]))
		if _, err := w.WriteFile(path.Join(MarkdownDir, dir, "index.md"), data); err != nil {
			return i, err
		}
	}
	return len(dirs), nil
}

// DirectoryIndex renders the index.md listing for the pages of one
// directory. Links are relative to the directory.
func DirectoryIndex(dir string, pages []*core.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", dirTitle(path.Base(dir)))
	b.WriteString("## Pages in this section\n\n")
	for _, p := range pages {
		rel := strings.TrimPrefix(p.FilePath, dir+"/")
		fmt.Fprintf(&b, "- [%s](%s)\n", p.Title, rel)
		if p.Description != "" {
			fmt.Fprintf(&b, "  %s\n", p.Description)
		}
	}
	return b.String()
}

// dirTitle capitalizes the first letter of a directory name and turns
// hyphens into spaces.
func dirTitle(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.ReplaceAll(name[size:], "-", " ")
}

// Package crawl discovers rendered pages in a static site build directory
// and indexes them by the URL path they are served under, keeping file
// discovery separate from the conversion pipeline.
package crawl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/llmsdocs/core"
)

// FindHTML returns the documentation HTML files below buildDir, sorted
// lexically. Files matched by IsSkipped are left out.
func FindHTML(buildDir string) ([]string, error) {
	return walkHTML(buildDir, IsSkipped)
}

// AllHTML returns every HTML file below buildDir, sorted lexically.
func AllHTML(buildDir string) ([]string, error) {
	return walkHTML(buildDir, func(string) bool { return false })
}

func walkHTML(buildDir string, skip func(rel string) bool) ([]string, error) {
	if err := checkDir(buildDir); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(buildDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := Rel(buildDir, p)
		if err != nil {
			return err
		}
		if !skip(rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", buildDir, err)
	}

	sort.Strings(files)
	return files, nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrBuildDirNotFound, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", core.ErrBuildDirNotFound, dir)
	}
	return nil
}

// Rel returns the slash-separated path of file relative to buildDir.
func Rel(buildDir, file string) (string, error) {
	rel, err := filepath.Rel(buildDir, file)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// BuildIndex registers every file under its URL path, with and without the
// leading slash.
func BuildIndex(buildDir string, files []string) (*Index, error) {
	index := NewIndex()
	for _, file := range files {
		rel, err := Rel(buildDir, file)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", file, err)
		}
		urlPath := URLPath(rel)
		index.Add(urlPath, file)
		index.Add(strings.TrimPrefix(urlPath, "/"), file)
	}
	return index, nil
}

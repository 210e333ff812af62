// Package fetch implements the Fetcher interface.
// It reads rendered pages from a static site build on the local disk.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/llmsdocs/core"
)

// FileFetcher reads HTML files from disk.
type FileFetcher struct{}

// New creates a FileFetcher.
func New() *FileFetcher {
	return &FileFetcher{}
}

// Fetch reads the HTML file at path. A cancelled context stops the read
// before it starts.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.FetchResult{
		Path: path,
		HTML: string(body),
	}, nil
}

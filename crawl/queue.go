// Package crawl: ordered index with deduplication.
// Keys keep their first registration and iterate in insertion order, so
// fuzzy lookups resolve the same way on every run.
package crawl

import "strings"

// Index maps URL path keys to HTML files in the build directory.
type Index struct {
	keys  []string
	files map[string]string
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		files: make(map[string]string),
	}
}

// Add registers key for file unless the key is already known.
func (x *Index) Add(key, file string) {
	if _, ok := x.files[key]; ok {
		return
	}
	x.files[key] = file
	x.keys = append(x.keys, key)
}

// Get returns the file registered under key.
func (x *Index) Get(key string) (string, bool) {
	file, ok := x.files[key]
	return file, ok
}

// Len returns the number of unique keys.
func (x *Index) Len() int {
	return len(x.keys)
}

// Keys returns all keys in insertion order.
func (x *Index) Keys() []string {
	return x.keys
}

// Lookup finds the HTML file of a page from its URL path and doc id. Exact
// candidates are tried first: urlPath with and without its leading slash,
// the id with and without a leading slash, the /index forms of both, and
// both without a trailing /index. Failing those, the first key ending with
// the last segment of the id wins.
func (x *Index) Lookup(urlPath, id string) (string, bool) {
	candidates := []string{
		urlPath,
		strings.TrimPrefix(urlPath, "/"),
		id,
		"/" + id,
		urlPath + "/index",
		id + "/index",
		strings.TrimSuffix(urlPath, "/index"),
		strings.TrimSuffix(id, "/index"),
	}
	for _, c := range candidates {
		if file, ok := x.files[c]; ok {
			return file, true
		}
	}

	name := id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		name = id[i+1:]
	}
	if name == "" {
		return "", false
	}
	for _, key := range x.keys {
		if strings.HasSuffix(key, name) {
			return x.files[key], true
		}
	}
	return "", false
}

// Package archive packs the per-page Markdown directory into a single
// downloadable file. Entries are rooted at the source directory's name
// (markdown/...), use forward slashes, and are added in lexical order.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/sanitize"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Supported formats.
const (
	FormatZip   = "zip"
	FormatTarGz = "tar.gz"
)

// Result describes a written archive.
type Result struct {
	Path  string
	Files int
	// Bytes is the size of the archive on disk.
	Bytes int64
}

// Filename returns the archive file name for a format, e.g. markdown.zip.
// The base name is sanitized for use as a file name.
func Filename(base, format string) (string, error) {
	switch format {
	case FormatZip, FormatTarGz:
		return sanitize.Filename(base) + "." + format, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedArchive, format)
}

// Create writes srcDir to dst in the given format.
func Create(format, srcDir, dst string) (*Result, error) {
	switch format {
	case FormatZip:
		return Zip(srcDir, dst)
	case FormatTarGz:
		return TarGz(srcDir, dst)
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedArchive, format)
}

// entry is one regular file to archive.
type entry struct {
	path string
	name string
	info fs.FileInfo
}

// collect lists the regular files below srcDir with their archive names.
func collect(srcDir string) ([]entry, error) {
	root := filepath.Base(filepath.Clean(srcDir))

	var entries []entry
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, entry{
			path: p,
			name: root + "/" + filepath.ToSlash(rel),
			info: info,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", srcDir, err)
	}
	return entries, nil
}

// Zip writes srcDir to dst as a zip archive at maximum compression.
func Zip(srcDir, dst string) (*Result, error) {
	entries, err := collect(srcDir)
	if err != nil {
		return nil, err
	}

	out, err := createFile(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, e := range entries {
		hdr, err := zip.FileInfoHeader(e.info)
		if err != nil {
			return nil, fmt.Errorf("zip header for %s: %w", e.path, err)
		}
		hdr.Name = e.name
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", e.name, err)
		}
		if err := copyFile(w, e.path); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing zip: %w", err)
	}
	return finish(out, dst, len(entries))
}

// TarGz writes srcDir to dst as a gzip-compressed tarball.
func TarGz(srcDir, dst string) (*Result, error) {
	entries, err := collect(srcDir)
	if err != nil {
		return nil, err
	}

	out, err := createFile(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	gz, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		hdr, err := tar.FileInfoHeader(e.info, "")
		if err != nil {
			return nil, fmt.Errorf("tar header for %s: %w", e.path, err)
		}
		hdr.Name = e.name
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("adding %s: %w", e.name, err)
		}
		if err := copyFile(tw, e.path); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("finishing tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("finishing gzip: %w", err)
	}
	return finish(out, dst, len(entries))
}

func createFile(dst string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", dst, err)
	}
	return out, nil
}

func copyFile(w io.Writer, p string) error {
	f, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying %s: %w", p, err)
	}
	return nil
}

func finish(out *os.File, dst string, files int) (*Result, error) {
	if err := out.Sync(); err != nil {
		return nil, fmt.Errorf("syncing %s: %w", dst, err)
	}
	info, err := out.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dst, err)
	}
	return &Result{Path: dst, Files: files, Bytes: info.Size()}, nil
}

// DirSize returns the total size of the regular files below dir.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sizing %s: %w", dir, err)
	}
	return total, nil
}

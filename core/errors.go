package core

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrSidebarLoad        = errors.New("failed to load sidebar")
	ErrBuildDirNotFound   = errors.New("build directory not found")
	ErrInvalidConfig      = errors.New("configuration validation failed")
	ErrNoHTMLFile         = errors.New("no HTML file for page")
	ErrUnsupportedArchive = errors.New("unsupported archive format")
)

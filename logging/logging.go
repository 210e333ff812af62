// Package logging builds the structured logger used across llmsdocs and
// holds the canonical attribute keys so field names do not drift between
// packages.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Canonical log field names.
const (
	KeyPage    = "page"
	KeyPath    = "path"
	KeySection = "section"
	KeyURL     = "url"
	KeyCount   = "count"
	KeyError   = "error"
)

func Page(id string) slog.Attr   { return slog.String(KeyPage, id) }
func Path(p string) slog.Attr    { return slog.String(KeyPath, p) }
func Section(s string) slog.Attr { return slog.String(KeySection, s) }
func URL(u string) slog.Attr     { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr      { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InActions reports whether the process runs inside a GitHub Actions job.
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") != ""
}

// New creates a logger writing to w at the given level. Inside GitHub
// Actions it emits workflow commands so warnings and errors surface as
// annotations; elsewhere it uses the standard text handler.
func New(w io.Writer, level string) *slog.Logger {
	l := ParseLevel(level)
	if InActions() {
		return slog.New(NewActionsHandler(w, l))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// Group opens a collapsible log group.
func Group(w io.Writer, title string) {
	if InActions() {
		fmt.Fprintf(w, "::group::%s\n", title)
		return
	}
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

// GroupEnd closes the group opened by Group.
func GroupEnd(w io.Writer) {
	if InActions() {
		fmt.Fprintln(w, "::endgroup::")
	}
}

// SetOutput publishes a step output. With $GITHUB_OUTPUT set the pair is
// appended to that file, otherwise it is logged.
func SetOutput(logger *slog.Logger, name string, value any) error {
	outputFile := os.Getenv("GITHUB_OUTPUT")
	if outputFile == "" {
		logger.Info("Output", slog.String("name", name), slog.Any("value", value))
		return nil
	}
	f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s=%v\n", name, value); err != nil {
		return fmt.Errorf("writing GITHUB_OUTPUT: %w", err)
	}
	return nil
}

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ActionsHandler is a slog.Handler that writes GitHub Actions workflow
// commands (::warning::, ::error::, ::debug::). Info records are written as
// plain lines. Attributes are appended as key=value pairs.
type ActionsHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewActionsHandler creates an ActionsHandler.
func NewActionsHandler(w io.Writer, level slog.Leveler) *ActionsHandler {
	return &ActionsHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *ActionsHandler) Enabled(_ context.Context, l slog.Level) bool {
	// The runner only shows ::debug:: lines with step debugging enabled, so
	// debug records are always emitted.
	return l >= slog.LevelDebug && (l < slog.LevelInfo || l >= h.level.Level())
}

func (h *ActionsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	switch {
	case r.Level >= slog.LevelError:
		b.WriteString("::error::")
	case r.Level >= slog.LevelWarn:
		b.WriteString("::warning::")
	case r.Level < slog.LevelInfo:
		b.WriteString("::debug::")
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	prefix := h.prefix()
	r.Attrs(func(a slog.Attr) bool {
		a.Key = prefix + a.Key
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *ActionsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	prefix := h.prefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *ActionsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *ActionsHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s=%v", a.Key, a.Value.Resolve())
}

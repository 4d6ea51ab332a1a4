// Package logging provides the human-readable slog handler used by the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a slog handler that writes compact, human-readable lines:
//
//	warning: Cached word list is invalid, refetching (lang=en)
//
// Messages come first, attributes follow in parentheses, and only levels at
// Warn and above carry a level prefix. Timestamps are omitted; this is a
// short-lived command-line process, not a server.
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

// NewHandler creates a Handler writing to w, dropping records below level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the log record.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var buf strings.Builder

	switch {
	case r.Level >= slog.LevelError:
		buf.WriteString("error: ")
	case r.Level >= slog.LevelWarn:
		buf.WriteString("warning: ")
	}
	buf.WriteString(r.Message)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	if len(attrs) > 0 {
		buf.WriteString(" (")
		for i, a := range attrs {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(a.Key)
			buf.WriteString("=")
			buf.WriteString(formatValue(a.Value))
		}
		buf.WriteString(")")
	}
	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

// WithAttrs returns a new handler that includes the given attributes on
// every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &clone
}

// WithGroup returns the handler unchanged; this program does not use groups.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

// formatValue renders an attribute value, quoting strings that would be
// ambiguous unquoted.
func formatValue(v slog.Value) string {
	resolved := v.Resolve()
	if resolved.Kind() == slog.KindString {
		s := resolved.String()
		if strings.ContainsAny(s, " =,()") {
			return fmt.Sprintf("%q", s)
		}
		return s
	}
	return fmt.Sprintf("%v", resolved.Any())
}

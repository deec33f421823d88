package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxValueRunes is the longest string attribute written unchanged.
const MaxValueRunes = 120

// LineSeparator replaces line breaks inside string attributes.
const LineSeparator = " ⏎ "

// CompactHandler wraps an slog.Handler and compacts string attributes.
// Multi-line values are flattened and long values truncated so that OCR
// text can be logged without breaking the log format.
type CompactHandler struct {
	// handler is the underlying slog handler that receives compacted records.
	handler slog.Handler

	// limit is the rune limit for string values.
	limit int
}

// NewCompactHandler creates a new CompactHandler wrapping the given handler.
// If handler is nil, the returned CompactHandler will use slog.Default().Handler().
func NewCompactHandler(handler slog.Handler) *CompactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &CompactHandler{handler: handler, limit: MaxValueRunes}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it to the underlying handler.
func (h *CompactHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return &CompactHandler{handler: h.handler.WithAttrs(compacted), limit: h.limit}
}

// WithGroup returns a new handler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return &CompactHandler{handler: h.handler.WithGroup(name), limit: h.limit}
}

// compactAttr compacts a single attribute, recursively handling groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			compacted[i] = h.compactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Compact(a.Value.String(), h.limit))
	}

	return a
}

// Compact flattens line breaks in s and truncates it to limit runes.
// A truncated value ends with the number of dropped characters.
func Compact(s string, limit int) string {
	if strings.ContainsAny(s, "\r\n\t") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\t", " ")
		s = strings.ReplaceAll(s, "\n", LineSeparator)
	}

	n := utf8.RuneCountInString(s)
	if limit <= 0 || n <= limit {
		return s
	}

	runes := []rune(s)
	return fmt.Sprintf("%s... (+%d chars)", string(runes[:limit]), n-limit)
}

// NewLogger creates a new text slog.Logger with compact handling.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger with compact handling
// that outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

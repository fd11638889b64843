package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// maxValueLen is the length above which string attribute values are
// shortened. Long enough for any reasonable path, short enough to keep one
// record on one terminal line.
const maxValueLen = 160

// ellipsis joins the kept head and tail of a shortened value.
const ellipsis = "..."

// AbbrevHandler wraps an slog.Handler and shortens oversized attribute
// values before passing records on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type AbbrevHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the user's home directory, abbreviated to "~" in path values.
	// Empty when the home directory could not be determined.
	home string
}

// NewAbbrevHandler creates a new AbbrevHandler wrapping the given handler.
// If handler is nil, the returned AbbrevHandler uses slog.Default().Handler().
func NewAbbrevHandler(handler slog.Handler) *AbbrevHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, _ := os.UserHomeDir() //nolint:errcheck // Missing home just disables abbreviation
	return &AbbrevHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *AbbrevHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *AbbrevHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.abbrevAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *AbbrevHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.abbrevAttr(a)
	}
	return &AbbrevHandler{handler: h.handler.WithAttrs(rewritten), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *AbbrevHandler) WithGroup(name string) slog.Handler {
	return &AbbrevHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// abbrevAttr rewrites a single attribute, recursively handling groups.
func (h *AbbrevHandler) abbrevAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.abbrevAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	v := a.Value.String()
	if h.home != "" && strings.HasPrefix(v, h.home+string(os.PathSeparator)) {
		v = "~" + v[len(h.home):]
	}
	if len(v) > maxValueLen {
		v = shorten(v)
	}
	if v == a.Value.String() {
		return a
	}
	return slog.String(a.Key, v)
}

// shorten keeps the head and tail of a long value with an ellipsis between.
// Cuts land on rune boundaries so a multi-byte character is never split into
// invalid UTF-8.
func shorten(v string) string {
	keep := (maxValueLen - len(ellipsis)) / 2

	r := []rune(v)
	if len(r) <= 2*keep {
		// Long in bytes but short in runes; nothing worth cutting.
		return v
	}
	return string(r[:keep]) + ellipsis + string(r[len(r)-keep:])
}

// NewLogger creates an slog.Logger writing text records to w through an
// AbbrevHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewAbbrevHandler(inner))
}

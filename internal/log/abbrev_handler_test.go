package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"
)

// TestAbbrevHandler tests attribute rewriting.
func TestAbbrevHandler(t *testing.T) {
	t.Parallel()

	t.Run("short values pass through", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Info("processing file", "file", "/tmp/a.png")

		if !strings.Contains(buf.String(), "file=/tmp/a.png") {
			t.Errorf("missing attribute in %q", buf.String())
		}
	})

	t.Run("oversized values are shortened", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		long := strings.Repeat("x", 500)
		logger.Info("processing file", "file", long)

		out := buf.String()
		if strings.Contains(out, long) {
			t.Error("value was not shortened")
		}
		if !strings.Contains(out, "...") {
			t.Errorf("missing ellipsis in %q", out)
		}
	})

	t.Run("multi-byte values stay valid UTF-8", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		// Three-byte runes make every non-boundary byte offset a rune split.
		long := strings.Repeat("画", 200)
		logger.Info("processing file", "file", long)

		out := buf.String()
		if strings.Contains(out, long) {
			t.Error("value was not shortened")
		}
		if !strings.Contains(out, "...") {
			t.Errorf("missing ellipsis in %q", out)
		}
		if !utf8.ValidString(out) {
			t.Errorf("shortened output is not valid UTF-8: %q", out)
		}
	})

	t.Run("non-string values are untouched", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Info("batch complete", "processed", 42)

		if !strings.Contains(buf.String(), "processed=42") {
			t.Errorf("missing attribute in %q", buf.String())
		}
	})

	t.Run("verbose flag controls level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("got %q, expected no output at warn level", buf.String())
		}

		logger.Warn("shown")
		if !strings.Contains(buf.String(), "shown") {
			t.Error("warn record missing")
		}
	})

	t.Run("groups are handled recursively", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		long := strings.Repeat("y", 300)
		logger.Info("msg", slog.Group("g", slog.String("inner", long)))

		if strings.Contains(buf.String(), long) {
			t.Error("group value was not shortened")
		}
	})
}

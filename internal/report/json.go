package report

import (
	"encoding/json"
	"io"

	"github.com/pixeltally/pixeltally/internal/model"
)

// JSONWriter outputs the whole run as indented JSON, including the grand
// totals and the per-file results.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that writes to output.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write encodes the summary.
func (w *JSONWriter) Write(s *model.RunSummary) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

package report

import (
	"io"

	"github.com/pixeltally/pixeltally/internal/model"
)

// Writer emits a completed run in some output format.
type Writer interface {
	// Write outputs the run summary to the configured destination.
	Write(summary *model.RunSummary) error
}

// baseWriter provides the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

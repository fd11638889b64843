package report

import (
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pixeltally/pixeltally/internal/model"
)

// separatorWidth is the width of the line between per-file output and the
// TOTAL summary.
const separatorWidth = 60

// Console writes the human-readable terminal output: one line per processed
// file while the batch runs, then a separator and a TOTAL line.
//
// Pixel counts are grouped with thousands separators so large images stay
// readable (a 24-megapixel photo prints as 24,000,000, not 24000000).
type Console struct {
	baseWriter

	// printer formats numbers with locale-aware digit grouping.
	printer *message.Printer
}

// NewConsole creates a Console that writes to output.
func NewConsole(output io.Writer) *Console {
	return &Console{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// WriteResult prints the per-file line for one successfully processed image.
func (c *Console) WriteResult(r model.FileResult) {
	c.printer.Fprintf(c.output, "%s: non-white=%d  total=%d  pct=%6.2f%%  depth=%d-bit\n",
		filepath.Base(r.Path), r.Nonwhite, r.Total, r.Percent, r.BitDepth)
}

// WriteSummary prints the separator and the TOTAL line.
// Callers skip it when no pixels were counted.
func (c *Console) WriteSummary(s *model.RunSummary) {
	c.printer.Fprintf(c.output, "%s\n", strings.Repeat("-", separatorWidth))
	c.printer.Fprintf(c.output, "TOTAL: non-white=%d  total=%d  pct=%6.2f%%\n",
		s.Nonwhite, s.Total, s.Percent())
}

// Write replays the whole run: every per-file line followed by the summary.
// This makes Console usable wherever a Writer is expected.
func (c *Console) Write(s *model.RunSummary) error {
	for _, r := range s.Results {
		c.WriteResult(r)
	}
	if s.Total > 0 {
		c.WriteSummary(s)
	}
	return nil
}

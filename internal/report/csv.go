package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pixeltally/pixeltally/internal/model"
)

// csvHeader is the fixed column layout of the CSV report.
var csvHeader = []string{"path", "nonwhite_pixels", "total_pixels", "percent_nonwhite", "bit_depth"}

// CSVWriter writes one row per successfully processed file. Failed files
// never appear; no partial row is written for them.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that writes to output.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header and the per-file rows. The percentage is
// formatted to four decimal places.
func (w *CSVWriter) Write(s *model.RunSummary) error {
	cw := csv.NewWriter(w.output)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range s.Results {
		row := []string{
			r.Path,
			strconv.FormatInt(r.Nonwhite, 10),
			strconv.FormatInt(r.Total, 10),
			strconv.FormatFloat(r.Percent, 'f', 4, 64),
			strconv.Itoa(r.BitDepth),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

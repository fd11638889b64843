package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/pixeltally/pixeltally/internal/model"
)

// MarkdownWriter outputs the run as GitHub Flavored Markdown. This format is
// designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation: type-safe tables and headings beat hand-assembled pipe syntax.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that writes to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full run report in Markdown format.
func (w *MarkdownWriter) Write(s *model.RunSummary) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeResults(md, s)
	w.writeTotals(md, s)

	return md.Build()
}

// writeHeader writes the run parameters table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.RunSummary) {
	md.H1("Non-White Pixel Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run Date", s.Started.Format("2006-01-02 15:04:05 MST")},
			{"Threshold", strconv.Itoa(s.Threshold)},
			{"Files Processed", strconv.Itoa(s.FileCount())},
			{"Files Failed", strconv.Itoa(s.Failed)},
		},
	})
	md.PlainText("")
}

// writeResults writes the per-file table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, s *model.RunSummary) {
	md.H2("Per-File Results")
	md.PlainText("")

	if len(s.Results) == 0 {
		md.PlainText("No files were processed successfully.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			"`" + r.Path + "`",
			strconv.FormatInt(r.Nonwhite, 10),
			strconv.FormatInt(r.Total, 10),
			strconv.FormatFloat(r.Percent, 'f', 2, 64) + "%",
			strconv.Itoa(r.BitDepth) + "-bit",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Non-White", "Total", "Percent", "Depth"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTotals writes the aggregate section.
func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, s *model.RunSummary) {
	md.H2("Total")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Non-White", "Total", "Percent"},
		Rows: [][]string{{
			strconv.FormatInt(s.Nonwhite, 10),
			strconv.FormatInt(s.Total, 10),
			strconv.FormatFloat(s.Percent(), 'f', 2, 64) + "%",
		}},
	})
}

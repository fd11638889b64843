// Package report provides run output in the supported formats.
//
// This package contains writers for different output formats:
//   - Console: Per-file lines and a TOTAL summary for terminal display
//   - CSVWriter: One row per successfully processed file
//   - JSONWriter: Structured JSON of the whole run
//   - MarkdownWriter: GitHub Flavored Markdown with result tables
//
// Design decision: We separate report writing from the result structures
// (which are in the model package) so new output formats can be added without
// modifying the core data structures. The file-format writers implement the
// Writer interface; the console writer additionally streams per-file lines
// while the batch is still running.
package report

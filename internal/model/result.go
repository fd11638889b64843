package model

import "time"

// FileResult is the counting result for a single successfully processed image.
type FileResult struct {
	// Path is the resolved absolute path of the image file.
	Path string `json:"path"`

	// Nonwhite is the number of pixels with at least one channel below the
	// effective threshold.
	Nonwhite int64 `json:"nonwhite_pixels"`

	// Total is Height x Width of the decoded image.
	Total int64 `json:"total_pixels"`

	// Percent is 100*Nonwhite/Total, or 0.0 for an empty image.
	Percent float64 `json:"percent_nonwhite"`

	// BitDepth is the per-sample depth the classification ran at: 8 or 16.
	BitDepth int `json:"bit_depth"`
}

// NewFileResult builds a FileResult, computing the percentage.
// An empty image (total of zero) yields 0.0 percent by convention rather
// than a division error.
func NewFileResult(path string, nonwhite, total int64, bitDepth int) FileResult {
	var pct float64
	if total > 0 {
		pct = float64(nonwhite) / float64(total) * 100.0
	}
	return FileResult{
		Path:     path,
		Nonwhite: nonwhite,
		Total:    total,
		Percent:  pct,
		BitDepth: bitDepth,
	}
}

// RunSummary accumulates per-file results into the grand totals for a batch
// run. It is the explicit accumulator threaded through the batch loop; there
// is no package-level mutable state.
type RunSummary struct {
	// Threshold is the 8-bit whiteness threshold the run was executed with.
	Threshold int `json:"threshold"`

	// Started is the time the run began.
	Started time.Time `json:"started"`

	// Results holds the per-file results of successfully processed images,
	// in processing order.
	Results []FileResult `json:"results"`

	// Nonwhite and Total are running sums over Results.
	Nonwhite int64 `json:"nonwhite_pixels"`
	Total    int64 `json:"total_pixels"`

	// Failed counts files that could not be decoded. Failed files contribute
	// nothing to the totals.
	Failed int `json:"failed_files"`
}

// NewRunSummary creates an empty summary for a run with the given threshold.
func NewRunSummary(threshold int) *RunSummary {
	return &RunSummary{
		Threshold: threshold,
		Started:   time.Now(),
		Results:   make([]FileResult, 0),
	}
}

// Add records a successful file result and folds it into the grand totals.
func (s *RunSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	s.Nonwhite += r.Nonwhite
	s.Total += r.Total
}

// AddFailure records a file that could not be processed.
func (s *RunSummary) AddFailure() {
	s.Failed++
}

// FileCount returns the number of successfully processed files.
func (s *RunSummary) FileCount() int {
	return len(s.Results)
}

// Percent returns the overall non-white percentage across all processed
// files, or 0.0 when nothing was counted.
func (s *RunSummary) Percent() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Nonwhite) / float64(s.Total) * 100.0
}

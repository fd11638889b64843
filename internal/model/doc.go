// Package model defines the core data structures used throughout pixeltally.
//
// This package contains the following main types:
//   - Pixels: A decoded raster ready for classification
//   - FileResult: The per-file counting result
//   - RunSummary: Aggregated results for a whole batch run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (imgio, classify, scan, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The result models are designed to be serializable to JSON for report output
// and database storage.
package model

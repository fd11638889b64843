// Package scan discovers image files from path arguments and runs the
// load-classify-accumulate loop over them.
//
// Discovery expands directories through a case-insensitive extension filter,
// deduplicates by resolved absolute path, and sorts the result so batches are
// deterministic. The batch runner threads an explicit accumulator through the
// loop and treats per-file decode failures as skip-and-continue outcomes, so
// one unreadable file never aborts a run.
package scan

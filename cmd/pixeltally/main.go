// Package main provides the entry point for the pixeltally CLI.
//
// pixeltally counts non-white pixels in batches of images. A pixel is
// considered white when all of its channels meet or exceed a configurable
// brightness threshold; everything below is counted as non-white.
//
// Usage:
//
//	pixeltally count photo.jpg scans/
//	pixeltally count -r -t 245 --csv results.csv scans/
//
// See --help for all available options.
package main

// main is the entry point for pixeltally.
func main() {
	Execute()
}

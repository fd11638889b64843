// Package imgio decodes image files into the raster model the classifier
// consumes.
//
// Decoding is delegated to the standard library codecs plus the
// golang.org/x/image decoders for BMP, TIFF, and WebP. The loader flattens
// every decoded image into channel-interleaved samples, dropping the alpha
// channel when one is present and preserving native 16-bit depth where the
// source has it.
package imgio

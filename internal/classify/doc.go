// Package classify implements the whiteness classification rule.
//
// A pixel is "white" when every one of its channels meets or exceeds the
// effective threshold; everything else is non-white. The user threshold is
// given on the 8-bit scale and scaled to the raster's bit depth before
// comparison.
package classify

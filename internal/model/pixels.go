package model

// Pixels is a decoded raster in the shape the classifier expects: row-major,
// channel-interleaved sample values with the alpha channel already stripped
// by the loader.
//
// Design decision: Samples are widened to uint32 regardless of source depth.
// This keeps a single code path for 8-bit and 16-bit images and lets the
// classifier min-max stretch rasters of unusual depth without a type switch.
// The memory overhead is acceptable because only one image is held at a time
// per worker.
type Pixels struct {
	// Width and Height are the raster dimensions in pixels.
	Width  int
	Height int

	// Channels is the number of color channels per pixel: 1 for grayscale,
	// 3 for color. Alpha is never present; the loader drops it.
	Channels int

	// Bits is the number of significant bits per sample. The loader produces
	// 8 or 16. Any other value is min-max normalized to the 8-bit range by
	// the classifier before thresholding.
	Bits int

	// Pix holds the samples, row-major and channel-interleaved. Its length
	// is Width*Height*Channels.
	Pix []uint32
}

// TotalPixels returns Height x Width. The channel dimension is excluded:
// a color pixel still counts as one pixel.
func (p *Pixels) TotalPixels() int64 {
	return int64(p.Width) * int64(p.Height)
}

// Sample returns the value of channel c of the pixel at (x, y).
func (p *Pixels) Sample(x, y, c int) uint32 {
	return p.Pix[(y*p.Width+x)*p.Channels+c]
}

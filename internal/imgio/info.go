package imgio

import (
	"fmt"
	"image"
	"os"
)

// Info describes an image file without exposing its pixels.
// It backs the inspect command.
type Info struct {
	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the registered decoder name that matched the file contents,
	// e.g. "png", "jpeg", "bmp", "tiff", "webp", "gif".
	Format string `json:"format"`

	// BitDepth is the per-sample depth: 8 or 16.
	BitDepth int `json:"bit_depth"`

	// HasAlpha reports whether the decoded color model carries an alpha
	// channel. The counting pipeline strips it either way.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Stat decodes the image at path and returns its metadata.
//
// Depth and alpha presence are derived from the concrete decoded type, the
// same way the loader decides how to flatten the raster.
func Stat(path string) (*Info, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	bitDepth := 8
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		bitDepth = 16
	case *image.Gray16:
		bitDepth = 16
	}

	b := img.Bounds()
	return &Info{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		BitDepth:      bitDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

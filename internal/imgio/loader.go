package imgio

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Register the decoders for every extension the default filter accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pixeltally/pixeltally/internal/model"
)

// Load decodes the image file at path into a raster.
//
// Any failure (unreadable file, unknown or corrupt format) is returned as an
// error for the caller to report as a per-file warning; a failed file never
// aborts a batch.
func Load(path string) (*model.Pixels, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}

// FromImage flattens a decoded image into channel-interleaved samples.
//
// Grayscale sources stay single-channel; everything else becomes three color
// channels with alpha dropped. 16-bit sources (Gray16, RGBA64, NRGBA64) keep
// their native depth; all other color models are read as 8-bit.
func FromImage(img image.Image) *model.Pixels {
	switch im := img.(type) {
	case *image.Gray:
		return grayPixels(im)
	case *image.Gray16:
		return gray16Pixels(im)
	case *image.NRGBA:
		return nrgbaPixels(im)
	case *image.RGBA64, *image.NRGBA64:
		return color16Pixels(img)
	default:
		// Covers YCbCr (JPEG), Paletted (GIF), CMYK, premultiplied RGBA and
		// anything else: go through the non-premultiplied 8-bit color model.
		return colorPixels(img)
	}
}

func grayPixels(im *image.Gray) *model.Pixels {
	b := im.Bounds()
	p := newPixels(b, 1, 8)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.Pix[i] = uint32(im.GrayAt(x, y).Y)
			i++
		}
	}
	return p
}

func gray16Pixels(im *image.Gray16) *model.Pixels {
	b := im.Bounds()
	p := newPixels(b, 1, 16)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.Pix[i] = uint32(im.Gray16At(x, y).Y)
			i++
		}
	}
	return p
}

func nrgbaPixels(im *image.NRGBA) *model.Pixels {
	b := im.Bounds()
	p := newPixels(b, 3, 8)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := im.NRGBAAt(x, y)
			p.Pix[i] = uint32(c.R)
			p.Pix[i+1] = uint32(c.G)
			p.Pix[i+2] = uint32(c.B)
			i += 3
		}
	}
	return p
}

func color16Pixels(img image.Image) *model.Pixels {
	b := img.Bounds()
	p := newPixels(b, 3, 16)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			p.Pix[i] = uint32(c.R)
			p.Pix[i+1] = uint32(c.G)
			p.Pix[i+2] = uint32(c.B)
			i += 3
		}
	}
	return p
}

func colorPixels(img image.Image) *model.Pixels {
	b := img.Bounds()
	p := newPixels(b, 3, 8)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p.Pix[i] = uint32(c.R)
			p.Pix[i+1] = uint32(c.G)
			p.Pix[i+2] = uint32(c.B)
			i += 3
		}
	}
	return p
}

func newPixels(b image.Rectangle, channels, bits int) *model.Pixels {
	w, h := b.Dx(), b.Dy()
	return &model.Pixels{
		Width:    w,
		Height:   h,
		Channels: channels,
		Bits:     bits,
		Pix:      make([]uint32, w*h*channels),
	}
}

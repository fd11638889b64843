package classify

import "github.com/pixeltally/pixeltally/internal/model"

// Scale16 maps the 8-bit threshold onto the 16-bit sample range.
// 255 * 257 == 65535, so the endpoints of both scales coincide.
const Scale16 = 257

// Result holds the classification outcome for one decoded raster.
type Result struct {
	// Nonwhite is the number of pixels with at least one channel below the
	// effective threshold.
	Nonwhite int64

	// Total is Height x Width; the channel dimension is excluded.
	Total int64

	// BitDepth is the depth the comparison actually ran at. Rasters of
	// unusual depth are normalized to 8 before comparison, so this is
	// always 8 or 16.
	BitDepth int
}

// Count classifies every pixel of p against the 8-bit threshold and returns
// the non-white count.
//
// The effective per-channel threshold depends on the raster depth:
//   - 16-bit samples: threshold * Scale16
//   - 8-bit samples: threshold unchanged
//   - anything else: samples are min-max stretched to the 8-bit range first
//     and the threshold is used unchanged
//
// A threshold of 0 makes every pixel white because all samples are >= 0.
// The caller validates the threshold to [0, 255] before getting here.
func Count(p *model.Pixels, threshold int) Result {
	pix := p.Pix
	bits := p.Bits

	var thr uint32
	switch p.Bits {
	case 16:
		thr = uint32(threshold) * Scale16
	case 8:
		thr = uint32(threshold)
	default:
		pix = Stretch(pix)
		bits = 8
		thr = uint32(threshold)
	}

	total := p.TotalPixels()
	var white int64
	for off := 0; off < len(pix); off += p.Channels {
		isWhite := true
		for c := range p.Channels {
			if pix[off+c] < thr {
				isWhite = false
				break
			}
		}
		if isWhite {
			white++
		}
	}

	return Result{
		Nonwhite: total - white,
		Total:    total,
		BitDepth: bits,
	}
}

// Stretch min-max normalizes samples to the 0-255 range, rounding to the
// nearest integer. A constant raster maps to all zeros. The input slice is
// not modified.
func Stretch(pix []uint32) []uint32 {
	out := make([]uint32, len(pix))
	if len(pix) == 0 {
		return out
	}

	lo, hi := pix[0], pix[0]
	for _, v := range pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return out
	}

	span := uint64(hi - lo)
	for i, v := range pix {
		// Rounded (v-lo)*255/span without floating point.
		out[i] = uint32((uint64(v-lo)*255 + span/2) / span)
	}
	return out
}

package pixelart

// Dimensions holds block-aligned output dimensions: both axes are multiples
// of the block size and at least one full block long.
type Dimensions struct {
	W, H int
}

// Adjust computes block-aligned output dimensions for a source of the given
// size. Each axis is floored to a multiple of blockSize and then raised to
// at least blockSize, so the result is never zero even when the source is
// smaller than one block. blockSize must be >= 1; that is a precondition,
// not a runtime-checked error.
func Adjust(w, h, blockSize int) Dimensions {
	return Dimensions{
		W: max((w/blockSize)*blockSize, blockSize),
		H: max((h/blockSize)*blockSize, blockSize),
	}
}

// CropCenter copies src into a fresh buffer of exactly dims, aligning the
// centers of the two rects. The offset on each axis is
// (source − adjusted)/2, truncated toward zero. Destination pixels with no
// source counterpart (possible when an axis was raised to one full block)
// stay zero, i.e. transparent black, and are resolved by Flatten later.
func CropCenter(src *PixelBuffer, dims Dimensions) *PixelBuffer {
	dst := NewPixelBuffer(dims.W, dims.H)
	offX := (src.W - dims.W) / 2
	offY := (src.H - dims.H) / 2

	x0 := max(0, -offX)
	x1 := min(dims.W, src.W-offX)
	if x0 >= x1 {
		return dst
	}
	for y := range dims.H {
		sy := y + offY
		if sy < 0 || sy >= src.H {
			continue
		}
		so := src.PixOffset(x0+offX, sy)
		do := dst.PixOffset(x0, y)
		copy(dst.Pix[do:do+(x1-x0)*4], src.Pix[so:so+(x1-x0)*4])
	}
	return dst
}

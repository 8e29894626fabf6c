package pixelart

import "math"

// Quantize replaces every pixel's RGB with its nearest palette color, in
// place, and returns the same buffer. Alpha bytes are not written; the
// pipeline flattens alpha to 255 before this stage.
func Quantize(b *PixelBuffer, pal Palette) *PixelBuffer {
	for i := 0; i < len(b.Pix); i += 4 {
		c := pal.Nearest(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
	}
	return b
}

// Dither reduces src to the palette with Floyd–Steinberg error diffusion
// and returns a fresh, fully opaque buffer of the same dimensions. src is
// never modified: the pass reads and accumulates error in a working copy.
//
// Pixels are visited in raster order, a single forward pass. Each pixel's
// quantization error (old − chosen, per channel, possibly negative) is
// diffused to the not-yet-visited neighbors with the classic weights:
//
//	          x    7/16
//	3/16    5/16   1/16
//
// Neighbor channels are updated as round(old + err*weight), clamped to
// [0, 255], written back into the working copy so later diffusions into the
// same pixel accumulate. Neighbors outside the grid are skipped.
func Dither(src *PixelBuffer, pal Palette) *PixelBuffer {
	work := src.Clone()
	out := NewPixelBuffer(src.W, src.H)
	for y := range src.H {
		for x := range src.W {
			i := work.PixOffset(x, y)
			oldR := work.Pix[i]
			oldG := work.Pix[i+1]
			oldB := work.Pix[i+2]
			c := pal.Nearest(oldR, oldG, oldB)

			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 255

			errR := int(oldR) - int(c.R)
			errG := int(oldG) - int(c.G)
			errB := int(oldB) - int(c.B)
			diffuse(work, x+1, y, errR, errG, errB, 7.0/16.0)
			diffuse(work, x-1, y+1, errR, errG, errB, 3.0/16.0)
			diffuse(work, x, y+1, errR, errG, errB, 5.0/16.0)
			diffuse(work, x+1, y+1, errR, errG, errB, 1.0/16.0)
		}
	}
	return out
}

func diffuse(b *PixelBuffer, x, y, errR, errG, errB int, weight float64) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i] = addClamped(b.Pix[i], float64(errR)*weight)
	b.Pix[i+1] = addClamped(b.Pix[i+1], float64(errG)*weight)
	b.Pix[i+2] = addClamped(b.Pix[i+2], float64(errB)*weight)
}

func addClamped(v uint8, delta float64) uint8 {
	nv := math.Round(float64(v) + delta)
	if nv < 0 {
		return 0
	}
	if nv > 255 {
		return 255
	}
	return uint8(nv)
}

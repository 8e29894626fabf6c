package pixelart

// Pixelate collapses src into flat blockSize × blockSize color blocks and
// returns a buffer with the same dimensions as src. For blockSize <= 1 it is
// a no-op and returns src itself.
//
// The block color is a nearest-neighbor sample, not an average: the buffer
// is downsampled to max(floor(dim/blockSize), 1) per axis by sampling one
// representative source pixel per destination pixel, then upsampled back
// with nearest-neighbor. Both directions use center sampling,
// s = ((2d+1)*srcDim) / (2*dstDim), which reproduces canvas-style
// smoothing-disabled scaling. When an axis is shorter than blockSize the
// downsample size floors to 1 and the whole axis collapses to one band.
func Pixelate(src *PixelBuffer, blockSize int) *PixelBuffer {
	if blockSize <= 1 {
		return src
	}
	dw := max(src.W/blockSize, 1)
	dh := max(src.H/blockSize, 1)

	small := NewPixelBuffer(dw, dh)
	for dy := range dh {
		sy := ((2*dy + 1) * src.H) / (2 * dh)
		for dx := range dw {
			sx := ((2*dx + 1) * src.W) / (2 * dw)
			so := src.PixOffset(sx, sy)
			do := small.PixOffset(dx, dy)
			copy(small.Pix[do:do+4], src.Pix[so:so+4])
		}
	}

	out := NewPixelBuffer(src.W, src.H)
	for y := range src.H {
		sy := ((2*y + 1) * dh) / (2 * src.H)
		for x := range src.W {
			sx := ((2*x + 1) * dw) / (2 * src.W)
			so := small.PixOffset(sx, sy)
			do := out.PixOffset(x, y)
			copy(out.Pix[do:do+4], small.Pix[so:so+4])
		}
	}
	return out
}

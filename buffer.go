package pixelart

// PixelBuffer is a width × height grid of 8-bit RGBA pixels stored as a
// flat byte slice in row-major order, 4 bytes per pixel (R, G, B, A).
// Invariant: len(Pix) == W*H*4.
type PixelBuffer struct {
	W, H int
	Pix  []uint8
}

func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{
		W:   w,
		H:   h,
		Pix: make([]uint8, w*h*4),
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *PixelBuffer) PixOffset(x, y int) int {
	return (y*b.W + x) * 4
}

// Clone returns an independent copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		W:   b.W,
		H:   b.H,
		Pix: make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

func (b *PixelBuffer) lengthValid() bool {
	return len(b.Pix) == b.W*b.H*4
}

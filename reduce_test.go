package pixelart

import (
	"bytes"
	"testing"
)

var blackWhite = Palette{{0, 0, 0}, {255, 255, 255}}

func paletteContains(p Palette, r, g, b uint8) bool {
	for _, c := range p {
		if c.R == r && c.G == g && c.B == b {
			return true
		}
	}
	return false
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		r, g, b uint8
		want    Color
	}{
		{"exact match", blackWhite, 255, 255, 255, Color{255, 255, 255}},
		{"closest wins", blackWhite, 10, 20, 30, Color{0, 0, 0}},
		{"tie keeps earlier entry", Palette{{0, 0, 0}, {10, 10, 10}}, 5, 5, 5, Color{0, 0, 0}},
		{"tie order reversed", Palette{{10, 10, 10}, {0, 0, 0}}, 5, 5, 5, Color{10, 10, 10}},
		{"single entry", Palette{{7, 8, 9}}, 200, 100, 0, Color{7, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.palette.Nearest(tt.r, tt.g, tt.b); got != tt.want {
				t.Fatalf("Nearest(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	b := patternBuffer(4, 4)
	// Leave a non-255 alpha in place to prove Quantize never writes alpha.
	b.Pix[b.PixOffset(2, 1)+3] = 200

	got := Quantize(b, blackWhite)
	if got != b {
		t.Fatal("Quantize should mutate and return the same buffer")
	}
	for y := range 4 {
		for x := range 4 {
			i := b.PixOffset(x, y)
			if !paletteContains(blackWhite, b.Pix[i], b.Pix[i+1], b.Pix[i+2]) {
				t.Fatalf("pixel (%d,%d) = %v not in palette", x, y, pixelAt(b, x, y))
			}
		}
	}
	if a := b.Pix[b.PixOffset(2, 1)+3]; a != 200 {
		t.Fatalf("alpha written by Quantize: got %d, want 200", a)
	}
}

func TestDitherTwoPixels(t *testing.T) {
	// Both pixels are mid gray (128,128,128). White is nearer (127² < 128²),
	// so the first pixel becomes white with error -127 per channel. The
	// right neighbor receives round(128 - 127*7/16) = 72, which is nearer to
	// black.
	src := NewPixelBuffer(2, 1)
	for x := range 2 {
		i := src.PixOffset(x, 0)
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 255
	}
	before := append([]uint8(nil), src.Pix...)

	out := Dither(src, blackWhite)
	if got, want := pixelAt(out, 0, 0), ([4]uint8{255, 255, 255, 255}); got != want {
		t.Fatalf("out(0,0) = %v, want %v", got, want)
	}
	if got, want := pixelAt(out, 1, 0), ([4]uint8{0, 0, 0, 255}); got != want {
		t.Fatalf("out(1,0) = %v, want %v", got, want)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Fatal("Dither modified its source buffer")
	}
}

func TestDitherErrorAccumulation(t *testing.T) {
	// 2x2 all (128,128,128). Hand-computed forward pass:
	//   (0,0) -> white, err -127; work: (1,0)=72, (0,1)=88, (1,1)=120
	//   (1,0) -> black, err +72;  work: (0,1)=102, (1,1)=143
	//   (0,1) -> black, err +102; work: (1,1)=188
	//   (1,1) -> white
	src := NewPixelBuffer(2, 2)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 255
	}
	out := Dither(src, blackWhite)
	want := [2][2][4]uint8{
		{{255, 255, 255, 255}, {0, 0, 0, 255}},
		{{0, 0, 0, 255}, {255, 255, 255, 255}},
	}
	for y := range 2 {
		for x := range 2 {
			if got := pixelAt(out, x, y); got != want[y][x] {
				t.Fatalf("out(%d,%d) = %v, want %v", x, y, got, want[y][x])
			}
		}
	}
}

func TestDitherOutputInPaletteAndOpaque(t *testing.T) {
	src := patternBuffer(9, 7)
	// Arbitrary alpha in the source: the output must still be fully opaque.
	for y := range 7 {
		for x := range 9 {
			src.Pix[src.PixOffset(x, y)+3] = uint8(40 * x)
		}
	}
	pal := Palette{{0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255}}
	out := Dither(src, pal)
	for y := range 7 {
		for x := range 9 {
			i := out.PixOffset(x, y)
			if !paletteContains(pal, out.Pix[i], out.Pix[i+1], out.Pix[i+2]) {
				t.Fatalf("pixel (%d,%d) = %v not in palette", x, y, pixelAt(out, x, y))
			}
			if out.Pix[i+3] != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, out.Pix[i+3])
			}
		}
	}
}

func TestDitherSingleEntryPalette(t *testing.T) {
	src := patternBuffer(3, 3)
	out := Dither(src, Palette{{7, 8, 9}})
	for y := range 3 {
		for x := range 3 {
			if got, want := pixelAt(out, x, y), ([4]uint8{7, 8, 9, 255}); got != want {
				t.Fatalf("out(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

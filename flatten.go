package pixelart

import "math"

// Flatten composites every translucent pixel onto an opaque white
// background, in place. For a pixel with alpha a < 255 and t = a/255 each
// channel becomes round(src*t + 255*(1−t)) and alpha is set to 255. Pixels
// already at alpha 255 are left byte-identical, so flattening an opaque
// buffer is a no-op and applying Flatten twice equals applying it once.
func Flatten(b *PixelBuffer) {
	for i := 0; i < len(b.Pix); i += 4 {
		a := b.Pix[i+3]
		if a == 255 {
			continue
		}
		t := float64(a) / 255.0
		bg := 255.0 * (1.0 - t)
		for c := range 3 {
			b.Pix[i+c] = uint8(math.Round(float64(b.Pix[i+c])*t + bg))
		}
		b.Pix[i+3] = 255
	}
}

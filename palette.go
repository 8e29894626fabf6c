package pixelart

import "math"

// Color is a single palette entry with 8-bit sRGB channels.
type Color struct {
	R, G, B uint8
}

// Palette is an ordered list of allowed output colors. It must be non-empty
// and is never mutated by the transform stages. Order only matters for
// exact-tie breaks in nearest search: the earlier entry wins.
type Palette []Color

// NearestIndex returns the index of the palette entry with the smallest
// squared sRGB distance to (r, g, b). Ties keep the lowest index because the
// comparison against the running minimum is strict. A non-empty palette is
// the caller's precondition; on an empty one the result is meaningless.
func (p Palette) NearestIndex(r, g, b uint8) int {
	best := 0
	bestDist := math.MaxInt
	for i, c := range p {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Nearest returns the palette color nearest to (r, g, b). See NearestIndex.
func (p Palette) Nearest(r, g, b uint8) Color {
	if len(p) == 0 {
		panic("pixelart: empty palette")
	}
	return p[p.NearestIndex(r, g, b)]
}

// DefaultPalette returns the built-in output palette used when the caller
// does not supply one: black, three grays, white and a small set of
// saturated primaries and earth tones.
func DefaultPalette() Palette {
	return Palette{
		{0, 0, 0},
		{60, 60, 60},
		{120, 120, 120},
		{210, 210, 210},
		{255, 255, 255},
		{255, 0, 0},
		{255, 127, 0},
		{255, 255, 0},
		{0, 255, 0},
		{0, 130, 60},
		{0, 255, 255},
		{40, 80, 160},
		{0, 0, 255},
		{160, 0, 255},
		{255, 0, 255},
		{255, 170, 200},
		{150, 90, 40},
		{250, 200, 120},
	}
}

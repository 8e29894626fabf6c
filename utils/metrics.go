package utils

import (
	"math"

	"gonum.org/v1/gonum/stat"

	pixelart "github.com/tomaru919/wplace-image-conversion"
)

// MSE is the mean squared error over the RGB channels of two buffers with
// identical dimensions (alpha excluded). Returns NaN on a dimension
// mismatch or empty buffers.
func MSE(a, b *pixelart.PixelBuffer) float64 {
	if a.W != b.W || a.H != b.H || len(a.Pix) != len(b.Pix) {
		return math.NaN()
	}
	if len(a.Pix) == 0 {
		return math.NaN()
	}
	sq := make([]float64, 0, a.W*a.H*3)
	for i := 0; i < len(a.Pix); i += 4 {
		for c := range 3 {
			d := float64(a.Pix[i+c]) - float64(b.Pix[i+c])
			sq = append(sq, d*d)
		}
	}
	return stat.Mean(sq, nil)
}

// PSNR reports the peak signal-to-noise ratio between two buffers in
// decibels. Identical buffers yield +Inf.
func PSNR(a, b *pixelart.PixelBuffer) float64 {
	mse := MSE(a, b)
	if math.IsNaN(mse) {
		return math.NaN()
	}
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255.0*255.0/mse)
}

// Package pixelart converts raster images into stylized pixel-art
// renderings: it crops to a block-aligned size, collapses the image into
// flat color blocks, flattens transparency onto a white background and
// reduces colors to a palette, either by plain nearest-color quantization
// or by Floyd–Steinberg dithering.
//
// The four stages are pure per-call transforms over PixelBuffer values with
// no shared state; Convert composes them in their fixed order. Decoding,
// encoding and all user interaction belong to the caller.
package pixelart

import "fmt"

// Options is the full configuration of one conversion.
type Options struct {
	// Edge length, in source pixels, of each square region collapsed to one
	// flat color. Must be >= 1.
	BlockSize int
	// Dither selects Floyd–Steinberg error diffusion instead of plain
	// nearest-color quantization.
	Dither bool
	// SkipPixelation keeps the image at full resolution; only color
	// reduction is applied.
	SkipPixelation bool
	// Palette is the set of allowed output colors. Must be non-empty.
	Palette Palette
}

func DefaultOptions() Options {
	return Options{
		BlockSize: 8,
		Palette:   DefaultPalette(),
	}
}

// OptionsFromSize returns defaults with a block size scaled to the source
// image, targeting roughly 128 blocks along the long edge.
func OptionsFromSize(w, h int) Options {
	opt := DefaultOptions()
	if w <= 0 || h <= 0 {
		return opt
	}
	opt.BlockSize = min(32, max(1, max(w, h)/128))
	return opt
}

// Result is the output of one conversion.
type Result struct {
	Buffer *PixelBuffer
	// BlockSize is the effective block size used. Dithering and
	// SkipPixelation force it to 1 regardless of the requested value.
	BlockSize int
}

// Convert runs the full pipeline: size adjustment, center crop, pixelation,
// alpha flattening and color reduction. The source buffer is never
// modified; every intermediate buffer lives only for this call.
//
// Malformed input is rejected up front rather than silently producing
// garbage: the palette must be non-empty, the block size at least 1, the
// dimensions positive and the pixel slice exactly W*H*4 bytes long.
func Convert(src *PixelBuffer, opt Options) (Result, error) {
	if len(opt.Palette) == 0 {
		return Result{}, fmt.Errorf("pixelart: empty palette")
	}
	if opt.BlockSize < 1 {
		return Result{}, fmt.Errorf("pixelart: block size %d, must be >= 1", opt.BlockSize)
	}
	if src.W < 1 || src.H < 1 {
		return Result{}, fmt.Errorf("pixelart: invalid dimensions %dx%d", src.W, src.H)
	}
	if !src.lengthValid() {
		return Result{}, fmt.Errorf("pixelart: buffer length %d does not match %dx%d", len(src.Pix), src.W, src.H)
	}

	blockSize := opt.BlockSize
	if opt.Dither || opt.SkipPixelation {
		// Dithering operates per pixel; a coarse block grid would feed the
		// error diffusion duplicated samples.
		blockSize = 1
	}

	buf := CropCenter(src, Adjust(src.W, src.H, blockSize))
	buf = Pixelate(buf, blockSize)
	Flatten(buf)
	if opt.Dither {
		buf = Dither(buf, opt.Palette)
	} else {
		buf = Quantize(buf, opt.Palette)
	}
	return Result{Buffer: buf, BlockSize: blockSize}, nil
}

package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	pixelart "github.com/tomaru919/wplace-image-conversion"
)

func ReadImage(path string) image.Image {
	file, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		panic(err)
	}
	return img
}

// BufferFromImage copies a decoded image into a straight-alpha pixel buffer
// anchored at (0, 0). Premultiplied and exotic source formats go through an
// NRGBA conversion so channel values match what the pipeline expects.
func BufferFromImage(img image.Image) *pixelart.PixelBuffer {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	buf := pixelart.NewPixelBuffer(b.Dx(), b.Dy())
	copy(buf.Pix, nrgba.Pix)
	return buf
}

// ImageFromBuffer wraps a pixel buffer as an NRGBA image ready for a PNG
// encoder. The bytes are copied so the buffer stays independent.
func ImageFromBuffer(buf *pixelart.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.W, buf.H))
	copy(img.Pix, buf.Pix)
	return img
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func SaveImages(images []*image.NRGBA, dir string) error {
	for i := range images {
		if err := SaveImage(images[i], dir+"out_0"+strconv.Itoa(i)+".png"); err != nil {
			return err
		}
	}
	return nil
}

// SavePalette renders the palette as a strip of tiles, one per entry.
func SavePalette(palette pixelart.Palette, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := range h {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}

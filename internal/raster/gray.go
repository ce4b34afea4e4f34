// Single-channel float rasters used by the segmentation and moment code
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Gray is a row-major single-channel image with samples in [0,1].
type Gray struct {
	Pix    []float32
	Width  int
	Height int
}

// NewGray allocates a zeroed width x height raster.
func NewGray(width, height int) *Gray {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Gray{
		Pix:    make([]float32, width*height),
		Width:  width,
		Height: height,
	}
}

// GrayFromSamples wraps samples in a raster without copying.
func GrayFromSamples(width, height int, samples []float32) (*Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("sample count %d does not match %dx%d", len(samples), width, height)
	}
	return &Gray{Pix: samples, Width: width, Height: height}, nil
}

// GrayFromImage converts an 8-bit grayscale image into a [0,1] raster.
func GrayFromImage(img *image.Gray) *Gray {
	b := img.Bounds()
	g := NewGray(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = float32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
		}
	}
	return g
}

// Bounds returns the raster size as an image rectangle anchored at the origin.
func (g *Gray) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// SameSize reports whether g and o have identical dimensions.
func (g *Gray) SameSize(o *Gray) bool {
	return g.Width == o.Width && g.Height == o.Height
}

// At returns the sample at (x, y). It panics when out of bounds.
func (g *Gray) At(x, y int) float32 {
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y).
func (g *Gray) Set(x, y int, v float32) {
	g.Pix[y*g.Width+x] = v
}

// Row returns the samples of row y.
func (g *Gray) Row(y int) []float32 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// ToImage renders the raster as an 8-bit grayscale image, clamping to [0,1].
func (g *Gray) ToImage() *image.Gray {
	img := image.NewGray(g.Bounds())
	for y := 0; y < g.Height; y++ {
		for x, v := range g.Row(y) {
			switch {
			case v <= 0:
				v = 0
			case v >= 1:
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

package raster

import "image"

// Mask is a row-major binary image; true marks foreground.
type Mask struct {
	Pix    []bool
	Width  int
	Height int
}

// NewMask allocates an all-background width x height mask.
func NewMask(width, height int) *Mask {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Mask{
		Pix:    make([]bool, width*height),
		Width:  width,
		Height: height,
	}
}

// At reports whether (x, y) is foreground.
func (m *Mask) At(x, y int) bool {
	return m.Pix[y*m.Width+x]
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, fg bool) {
	m.Pix[y*m.Width+x] = fg
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, fg := range m.Pix {
		if fg {
			n++
		}
	}
	return n
}

// Equal reports whether both masks have the same size and contents.
func (m *Mask) Equal(o *Mask) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// ToImage renders foreground as 255 and background as 0.
func (m *Mask) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, fg := range m.Pix {
		if fg {
			img.Pix[(i/m.Width)*img.Stride+i%m.Width] = 255
		}
	}
	return img
}

// Point is a position in pixel coordinates.
type Point struct {
	X, Y float64
}

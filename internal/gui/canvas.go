// internal/gui/canvas.go
// Fixed-size raster view for the composite frame
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// FrameCanvas shows the composite at its native pixel size.
type FrameCanvas struct {
	image *canvas.Image
}

func NewFrameCanvas(size image.Point) *FrameCanvas {
	placeholder := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for i := 3; i < len(placeholder.Pix); i += 4 {
		placeholder.Pix[i] = 0xff
	}

	img := canvas.NewImageFromImage(placeholder)
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(float32(size.X), float32(size.Y)))

	return &FrameCanvas{image: img}
}

func (fc *FrameCanvas) GetContainer() fyne.CanvasObject {
	return fc.image
}

// Update replaces the displayed raster. Call on the fyne main goroutine.
func (fc *FrameCanvas) Update(img image.Image) {
	fc.image.Image = img
	fc.image.Refresh()
}

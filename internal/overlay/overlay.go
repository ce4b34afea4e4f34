// internal/overlay/overlay.go
// Side-by-side composite of a pair and its mask with the axis overlay
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/core"
)

// NoObjectText is drawn on the mask pane when a frame has no axes.
const NoObjectText = "no object detected"

const discSegments = 64

// Style controls overlay colours and geometry.
type Style struct {
	Spacer int

	CentroidRadius float64
	MajorRadius    float64
	MinorRadius    float64
	LineWidth      float64

	Background    color.RGBA
	CentroidColor color.RGBA
	MajorColor    color.RGBA
	MinorColor    color.RGBA
	LabelColor    color.RGBA
}

// DefaultStyle returns the demo colours and radii.
func DefaultStyle() Style {
	return Style{
		Spacer:         10,
		CentroidRadius: 7,
		MajorRadius:    100,
		MinorRadius:    50,
		LineWidth:      2,
		Background:     color.RGBA{A: 255},
		CentroidColor:  color.RGBA{R: 255, A: 255},
		MajorColor:     color.RGBA{R: 255, B: 255, A: 255},
		MinorColor:     color.RGBA{G: 255, A: 255},
		LabelColor:     color.RGBA{R: 255, G: 255, A: 255},
	}
}

// CompositeSize returns the size of a composite for images of w by h.
func CompositeSize(w, h int, style Style) image.Point {
	return image.Pt(3*w+2*style.Spacer, h)
}

// MaskOrigin returns the top-left corner of the mask pane.
func MaskOrigin(w int, style Style) image.Point {
	return image.Pt(2*(w+style.Spacer), 0)
}

// Composite lays out background, object and mask left to right and draws
// the centroid and axes on the mask pane.
func Composite(frame *core.Frame, pair *core.ImagePair, style Style) *image.RGBA {
	w, h := pair.Width(), pair.Height()
	size := CompositeSize(w, h, style)
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	panes := []image.Image{
		pair.Background.ToImage(),
		pair.Object.ToImage(),
		frame.Mask.ToImage(),
	}
	for i, pane := range panes {
		origin := image.Pt(i*(w+style.Spacer), 0)
		draw.Draw(dst, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}, pane, image.Point{}, draw.Src)
	}

	origin := MaskOrigin(w, style)
	if frame.Axes == nil {
		DrawLabel(dst, origin.Add(image.Pt(6, 16)), NoObjectText, style.LabelColor)
		return dst
	}

	DrawAxes(dst, origin, *frame.Axes, style)
	return dst
}

// DrawAxes draws the centroid disc, the major axis and the minor axis with
// origin as the position of pixel (0,0).
func DrawAxes(dst draw.Image, origin image.Point, axes algorithms.AxisResult, style Style) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())

	// Pixel centres sit half a unit in from the corner.
	cx := float64(origin.X-b.Min.X) + axes.Centroid.X + 0.5
	cy := float64(origin.Y-b.Min.Y) + axes.Centroid.Y + 0.5

	disc(r, cx, cy, style.CentroidRadius)
	fill(r, dst, style.CentroidColor)

	axis(r, cx, cy, axes.MajorAngle, style.MajorRadius, style.LineWidth)
	fill(r, dst, style.MajorColor)

	axis(r, cx, cy, axes.MinorAngle(), style.MinorRadius, style.LineWidth)
	fill(r, dst, style.MinorColor)
}

// DrawLabel writes text with its baseline starting at pt.
func DrawLabel(dst draw.Image, pt image.Point, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(text)
}

func fill(r *vector.Rasterizer, dst draw.Image, col color.RGBA) {
	r.DrawOp = draw.Over
	r.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
}

func disc(r *vector.Rasterizer, cx, cy, radius float64) {
	for i := 0; i < discSegments; i++ {
		a := 2 * math.Pi * float64(i) / discSegments
		x := float32(cx + radius*math.Cos(a))
		y := float32(cy + radius*math.Sin(a))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

// axis adds a segment of half-length radius through (cx, cy) as a filled
// quad of the given width.
func axis(r *vector.Rasterizer, cx, cy, angle, radius, width float64) {
	dx, dy := math.Cos(angle)*radius, math.Sin(angle)*radius
	nx, ny := -math.Sin(angle)*width/2, math.Cos(angle)*width/2

	r.MoveTo(float32(cx+dx+nx), float32(cy+dy+ny))
	r.LineTo(float32(cx-dx+nx), float32(cy-dy+ny))
	r.LineTo(float32(cx-dx-nx), float32(cy-dy-ny))
	r.LineTo(float32(cx+dx-nx), float32(cy+dy-ny))
	r.ClosePath()
}

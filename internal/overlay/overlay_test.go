package overlay

import (
	"image"
	"image/color"
	"testing"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/core"
	"major-minor-axis/internal/raster"
)

func testPair(w, h int) *core.ImagePair {
	bg := raster.NewGray(w, h)
	obj := raster.NewGray(w, h)
	for x := 0; x < w; x++ {
		obj.Set(x, 0, 1)
	}
	return &core.ImagePair{Name: "test", Background: bg, Object: obj}
}

func near(c color.RGBA, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c.R, want.R) < 40 && d(c.G, want.G) < 40 && d(c.B, want.B) < 40
}

func TestCompositeLayout(t *testing.T) {
	style := DefaultStyle()
	pair := testPair(320, 240)
	frame := &core.Frame{Mask: raster.NewMask(320, 240)}

	img := Composite(frame, pair, style)
	if got, want := img.Bounds().Size(), image.Pt(980, 240); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}

	// object pane row 0 is white, spacer stays black
	if c := img.RGBAAt(330, 0); c.R != 255 {
		t.Fatalf("object pane pixel %v, want white", c)
	}
	if c := img.RGBAAt(325, 0); c != style.Background {
		t.Fatalf("spacer pixel %v, want background", c)
	}
}

func TestCompositeDrawsAxes(t *testing.T) {
	style := DefaultStyle()
	pair := testPair(320, 240)
	frame := &core.Frame{
		Mask: raster.NewMask(320, 240),
		Axes: &algorithms.AxisResult{
			Centroid:   raster.Point{X: 160, Y: 120},
			MajorAngle: 0,
			PixelCount: 1,
		},
	}

	img := Composite(frame, pair, style)
	origin := MaskOrigin(320, style)
	at := func(x, y int) color.RGBA { return img.RGBAAt(origin.X+x, origin.Y+y) }

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"centroid disc", 163, 123, style.CentroidColor},
		{"major axis", 250, 120, style.MajorColor},
		{"major axis far end", 70, 120, style.MajorColor},
		{"minor axis", 160, 160, style.MinorColor},
		{"minor axis over centroid", 160, 120, style.MinorColor},
		{"outside", 250, 200, color.RGBA{A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := at(tt.x, tt.y); !near(c, tt.want) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, c, tt.want)
			}
		})
	}
}

func TestCompositeNoObjectLabel(t *testing.T) {
	style := DefaultStyle()
	pair := testPair(320, 240)
	frame := &core.Frame{Mask: raster.NewMask(320, 240)}

	img := Composite(frame, pair, style)
	origin := MaskOrigin(320, style)

	labelled := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 140; x++ {
			if img.RGBAAt(origin.X+x, origin.Y+y) == style.LabelColor {
				labelled++
			}
		}
	}
	if labelled == 0 {
		t.Fatal("no label pixels drawn on empty mask pane")
	}
}

func TestDrawAxesOffsetBounds(t *testing.T) {
	style := DefaultStyle()
	dst := image.NewRGBA(image.Rect(100, 100, 200, 200))

	DrawAxes(dst, image.Pt(100, 100), algorithms.AxisResult{
		Centroid:   raster.Point{X: 50, Y: 50},
		MajorAngle: 0,
	}, style)

	if c := dst.RGBAAt(153, 153); !near(c, style.CentroidColor) {
		t.Fatalf("centroid pixel %v", c)
	}
}

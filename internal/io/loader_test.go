package io

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestIsSupportedImageFormat(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"image-bg.jpg", true},
		{"IMAGE1.JPEG", true},
		{"dir.d/pic.png", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsSupportedImageFormat(c.path); got != c.want {
			t.Errorf("IsSupportedImageFormat(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestIsSavableFormat(t *testing.T) {
	for path, want := range map[string]bool{
		"out.png":  true,
		"OUT.JPG":  true,
		"out.jpeg": true,
		"out.gif":  false,
		"out.webp": false,
		"out":      false,
	} {
		if got := IsSavableFormat(path); got != want {
			t.Errorf("IsSavableFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoadGrayscale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")

	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(0, 0, color.Gray{Y: 255})
	src.SetGray(2, 1, color.Gray{Y: 51})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	il := NewImageLoader(quietLogger())
	g, err := il.LoadGrayscale(path)
	if err != nil {
		t.Fatalf("LoadGrayscale: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("size %dx%d, want 3x2", g.Width, g.Height)
	}
	if g.At(0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", g.At(0, 0))
	}
	if g.At(2, 1) != float32(51)/255 {
		t.Errorf("At(2,1) = %v, want 0.2", g.At(2, 1))
	}
	if g.At(1, 0) != 0 {
		t.Errorf("At(1,0) = %v, want 0", g.At(1, 0))
	}
}

func TestLoadGrayscaleErrors(t *testing.T) {
	il := NewImageLoader(quietLogger())
	dir := t.TempDir()

	if _, err := il.LoadGrayscale(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := il.LoadGrayscale(filepath.Join(dir, "file.txt")); err == nil {
		t.Error("expected error for unsupported extension")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := il.LoadGrayscale(bad); err == nil {
		t.Error("expected decode error")
	}
}

func TestSaveImageRoundTrip(t *testing.T) {
	il := NewImageLoader(quietLogger())
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	out := filepath.Join(dir, "out.png")
	if err := il.SaveImage(img, out); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	g, err := il.LoadGrayscale(out)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 4 || g.Height != 4 {
		t.Errorf("size %dx%d", g.Width, g.Height)
	}
	if g.At(1, 1) == 0 {
		t.Error("red pixel lost its intensity")
	}

	if err := il.SaveImage(img, filepath.Join(dir, "out.gif")); err == nil {
		t.Error("expected error for unsupported output format")
	}
}

func TestToGrayOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.White)
	g := ToGray(src)
	if g.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds %v", g.Bounds())
	}
	if g.GrayAt(0, 0).Y < 250 {
		t.Errorf("GrayAt(0,0) = %d", g.GrayAt(0, 0).Y)
	}
}

// Image loading and saving for the native backend
package io

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"major-minor-axis/internal/raster"
)

// GrayLoader loads grayscale rasters and writes rendered frames.
type GrayLoader interface {
	LoadGrayscale(path string) (*raster.Gray, error)
	SaveImage(img image.Image, path string) error
}

// ImageLoader handles image file operations with the standard decoders
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadGrayscale decodes path and converts it to a [0,1] raster.
func (il *ImageLoader) LoadGrayscale(path string) (*raster.Gray, error) {
	il.logger.WithField("filepath", path).Debug("Loading image as grayscale")

	if !IsSupportedImageFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	gray := ToGray(img)
	b := gray.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("invalid image dimensions: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"format":   format,
		"width":    b.Dx(),
		"height":   b.Dy(),
	}).Info("Grayscale image loaded successfully")

	return raster.GrayFromImage(gray), nil
}

// SaveImage encodes img as PNG or JPEG depending on the extension of path.
func (il *ImageLoader) SaveImage(img image.Image, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if !IsSavableFormat(path) {
		return fmt.Errorf("unsupported output format: %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}

	b := img.Bounds()
	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    b.Dx(),
		"height":   b.Dy(),
	}).Info("Image saved successfully")
	return nil
}

// ToGray converts any image to 8-bit grayscale anchored at the origin.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	g := gift.New(gift.Grayscale())
	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// IsSupportedImageFormat reports whether path has a decodable extension.
func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedExtensions() {
		if ext == format {
			return true
		}
	}
	return false
}

// IsSavableFormat reports whether SaveImage can encode to path.
func IsSavableFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

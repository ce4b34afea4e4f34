// OpenCV backed image loading and saving
package opencv

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"major-minor-axis/internal/io"
	"major-minor-axis/internal/raster"
)

// ImageLoader reads and writes images through OpenCV's codecs.
type ImageLoader struct {
	logger logrus.FieldLogger
}

var _ io.GrayLoader = (*ImageLoader)(nil)

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{logger: logger}
}

func (il *ImageLoader) LoadGrayscale(path string) (*raster.Gray, error) {
	il.logger.WithField("filepath", path).Debug("Loading image as grayscale")

	if !io.IsSupportedImageFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image: %s", path)
	}

	g, err := MatToGray(mat)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Grayscale image loaded successfully")

	return g, nil
}

func (il *ImageLoader) SaveImage(img image.Image, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("converting image for %s: %w", path, err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
	}).Info("Image saved successfully")
	return nil
}

// Conversions between gocv Mats and the float rasters used by the core
package opencv

import (
	"encoding/binary"
	"fmt"
	"math"

	"gocv.io/x/gocv"

	"major-minor-axis/internal/raster"
)

// MatToGray converts a single-channel 8-bit Mat into a [0,1] raster.
func MatToGray(mat gocv.Mat) (*raster.Gray, error) {
	if err := ValidateMat(mat, "Mat to raster conversion"); err != nil {
		return nil, err
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("expected CV_8UC1, got type %d", int(mat.Type()))
	}

	data := mat.ToBytes()
	samples := make([]float32, len(data))
	for i, v := range data {
		samples[i] = float32(v) / 255
	}
	return raster.GrayFromSamples(mat.Cols(), mat.Rows(), samples)
}

// GrayToMat64 builds a CV_64FC1 Mat holding the samples of g. The caller
// must Close it.
func GrayToMat64(g *raster.Gray) (gocv.Mat, error) {
	buf := make([]byte, 8*len(g.Pix))
	for i, v := range g.Pix {
		binary.NativeEndian.PutUint64(buf[8*i:], math.Float64bits(float64(v)))
	}
	mat, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV64FC1, buf)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("Mat creation failed: %w", err)
	}
	return mat, nil
}

// MatToMask reads an 8-bit Mat where nonzero marks foreground.
func MatToMask(mat gocv.Mat) (*raster.Mask, error) {
	if err := ValidateMat(mat, "Mat to mask conversion"); err != nil {
		return nil, err
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("expected CV_8UC1 mask, got type %d", int(mat.Type()))
	}

	data := mat.ToBytes()
	m := raster.NewMask(mat.Cols(), mat.Rows())
	if len(data) != len(m.Pix) {
		return nil, fmt.Errorf("Mat holds %d bytes, want %d", len(data), len(m.Pix))
	}
	for i, v := range data {
		m.Pix[i] = v != 0
	}
	return m, nil
}

// ValidateMat checks a Mat for basic requirements
func ValidateMat(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}
	if mat.Channels() != 1 {
		return fmt.Errorf("expected 1 channel, got %d for operation: %s", mat.Channels(), operation)
	}
	return nil
}

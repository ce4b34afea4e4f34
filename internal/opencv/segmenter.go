// OpenCV implementation of background subtraction
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/raster"
)

// SegmenterName is the registry name of the OpenCV segmenter.
const SegmenterName = "absdiff_opencv"

// AbsDiff segments with gocv.AbsDiff and gocv.Compare. Work happens in
// CV_64F so results match the native segmenter exactly.
type AbsDiff struct{}

// NewAbsDiff creates the OpenCV segmenter.
func NewAbsDiff() *AbsDiff {
	return &AbsDiff{}
}

// Segment implements algorithms.Segmenter.
func (d *AbsDiff) Segment(a, b *raster.Gray, threshold float64) (*raster.Mask, error) {
	if err := algorithms.CheckSameSize(a, b); err != nil {
		return nil, err
	}

	matA, err := GrayToMat64(a)
	if err != nil {
		return nil, err
	}
	defer matA.Close()

	matB, err := GrayToMat64(b)
	if err != nil {
		return nil, err
	}
	defer matB.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(matA, matB, &diff)

	limit := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(threshold, 0, 0, 0), a.Height, a.Width, gocv.MatTypeCV64FC1)
	defer limit.Close()

	fg := gocv.NewMat()
	defer fg.Close()
	gocv.Compare(diff, limit, &fg, gocv.CompareGE)

	mask, err := MatToMask(fg)
	if err != nil {
		return nil, fmt.Errorf("reading OpenCV mask: %w", err)
	}
	return mask, nil
}

// GetName returns the registry name.
func (d *AbsDiff) GetName() string {
	return SegmenterName
}

// GetDescription returns a short description for listings.
func (d *AbsDiff) GetDescription() string {
	return "Absolute difference threshold computed with OpenCV"
}

func init() {
	algorithms.Register(SegmenterName, NewAbsDiff())
}

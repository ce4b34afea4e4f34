// Background subtraction by absolute difference
package algorithms

import (
	"fmt"
	"math"

	"major-minor-axis/internal/raster"
)

// NativeSegmenterName is the registry name of the pure Go segmenter.
const NativeSegmenterName = "absdiff"

// AbsDiff is the pure Go background subtraction segmenter.
type AbsDiff struct{}

// NewAbsDiff creates a new absolute difference segmenter
func NewAbsDiff() *AbsDiff {
	return &AbsDiff{}
}

// Segment implements Segmenter.
func (d *AbsDiff) Segment(a, b *raster.Gray, threshold float64) (*raster.Mask, error) {
	return SubtractBackground(a, b, threshold)
}

// GetName returns the registry name.
func (d *AbsDiff) GetName() string {
	return NativeSegmenterName
}

// GetDescription returns a short description for listings.
func (d *AbsDiff) GetDescription() string {
	return "Per-pixel absolute difference against a threshold"
}

// SubtractBackground compares a and b pixel by pixel. Pixels whose absolute
// difference is below threshold are background, all others foreground.
func SubtractBackground(a, b *raster.Gray, threshold float64) (*raster.Mask, error) {
	if err := CheckSameSize(a, b); err != nil {
		return nil, err
	}

	mask := raster.NewMask(a.Width, a.Height)
	for i := range a.Pix {
		diff := math.Abs(float64(a.Pix[i]) - float64(b.Pix[i]))
		mask.Pix[i] = !(diff < threshold)
	}
	return mask, nil
}

// CheckSameSize fails with raster.ErrDimensionMismatch unless a and b line up.
func CheckSameSize(a, b *raster.Gray) error {
	if a == nil || b == nil {
		return fmt.Errorf("segmentation input is nil")
	}
	if !a.SameSize(b) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", raster.ErrDimensionMismatch,
			a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}

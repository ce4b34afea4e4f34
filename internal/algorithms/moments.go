// Centroid and principal axis orientation from image moments
package algorithms

import (
	"fmt"
	"math"

	"major-minor-axis/internal/raster"
)

// AxisResult describes the single blob found in a mask.
type AxisResult struct {
	Centroid   raster.Point
	MajorAngle float64 // radians
	PixelCount int
}

// MinorAngle is the major axis rotated by a quarter turn.
func (r AxisResult) MinorAngle() float64 {
	return r.MajorAngle + math.Pi/2
}

// MajorDegrees returns the major axis angle in degrees.
func (r AxisResult) MajorDegrees() float64 {
	return r.MajorAngle * 180 / math.Pi
}

// MinorDegrees returns the minor axis angle in degrees.
func (r AxisResult) MinorDegrees() float64 {
	return r.MinorAngle() * 180 / math.Pi
}

// ComputeCentroid returns the mean foreground position and the number of
// foreground pixels. An empty mask yields raster.ErrDegenerateInput.
func ComputeCentroid(mask *raster.Mask) (raster.Point, int, error) {
	var sumX, sumY float64
	count := 0

	for y := 0; y < mask.Height; y++ {
		row := mask.Pix[y*mask.Width : (y+1)*mask.Width]
		for x, fg := range row {
			if !fg {
				continue
			}
			sumX += float64(x)
			sumY += float64(y)
			count++
		}
	}

	if count == 0 {
		return raster.Point{}, 0, fmt.Errorf("centroid of %dx%d mask: %w", mask.Width, mask.Height, raster.ErrDegenerateInput)
	}

	n := float64(count)
	return raster.Point{X: sumX / n, Y: sumY / n}, count, nil
}

// ComputeAxisAngle returns the major axis orientation in radians.
//
// It sums the squared displacements dx = cx-x and dy = cy-y over the
// foreground along with dx*dy. When the cross term is negative DY2 is negated,
// and the angle is atan2(DY2/n, DX2/n). This is not the covariance based
// 0.5*atan2(2*Ixy, Ixx-Iyy); results differ from it for most shapes.
func ComputeAxisAngle(mask *raster.Mask, centroid raster.Point, pixelCount int) (float64, error) {
	if pixelCount <= 0 {
		return 0, fmt.Errorf("axis angle with pixel count %d: %w", pixelCount, raster.ErrDegenerateInput)
	}

	var dx2, dy2, dxdy float64
	for y := 0; y < mask.Height; y++ {
		row := mask.Pix[y*mask.Width : (y+1)*mask.Width]
		for x, fg := range row {
			if !fg {
				continue
			}
			dx := centroid.X - float64(x)
			dy := centroid.Y - float64(y)

			dx2 += dx * dx
			dy2 += dy * dy
			dxdy += dx * dy
		}
	}

	if dxdy < 0 {
		dy2 = -dy2
	}

	n := float64(pixelCount)
	return math.Atan2(dy2/n, dx2/n), nil
}

// Analyze computes centroid, pixel count and major axis angle of mask.
func Analyze(mask *raster.Mask) (AxisResult, error) {
	centroid, count, err := ComputeCentroid(mask)
	if err != nil {
		return AxisResult{}, err
	}

	angle, err := ComputeAxisAngle(mask, centroid, count)
	if err != nil {
		return AxisResult{}, err
	}

	return AxisResult{
		Centroid:   centroid,
		MajorAngle: angle,
		PixelCount: count,
	}, nil
}

package raster

import "errors"

var (
	// ErrDimensionMismatch is returned when two rasters that must line up
	// pixel for pixel have different sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegenerateInput is returned when a mask has no foreground pixels,
	// so no centroid or orientation exists.
	ErrDegenerateInput = errors.New("degenerate input: no foreground pixels")
)

// Background/object image pairs selected by index
package core

import (
	"errors"
	"fmt"

	"major-minor-axis/internal/raster"
)

// ErrUnknownPair is returned when a pair index is out of range.
var ErrUnknownPair = errors.New("unknown image pair")

const maxDimension = 16384

// ImagePair is a background image and an object image of the same size.
type ImagePair struct {
	Name       string
	Background *raster.Gray
	Object     *raster.Gray
}

// Width returns the pair's common image width.
func (p *ImagePair) Width() int { return p.Background.Width }

// Height returns the pair's common image height.
func (p *ImagePair) Height() int { return p.Background.Height }

// PairSet is an ordered, append-only collection of image pairs.
type PairSet struct {
	pairs []*ImagePair
}

func NewPairSet() *PairSet {
	return &PairSet{}
}

// Add validates and appends a pair, returning its index.
func (ps *PairSet) Add(name string, background, object *raster.Gray) (int, error) {
	if err := ValidateImage(background); err != nil {
		return -1, fmt.Errorf("pair %q background: %w", name, err)
	}
	if err := ValidateImage(object); err != nil {
		return -1, fmt.Errorf("pair %q object: %w", name, err)
	}
	if !background.SameSize(object) {
		return -1, fmt.Errorf("pair %q: %w: background %dx%d, object %dx%d", name,
			raster.ErrDimensionMismatch, background.Width, background.Height, object.Width, object.Height)
	}

	ps.pairs = append(ps.pairs, &ImagePair{
		Name:       name,
		Background: background,
		Object:     object,
	})
	return len(ps.pairs) - 1, nil
}

// Get returns the pair at index i.
func (ps *PairSet) Get(i int) (*ImagePair, error) {
	if i < 0 || i >= len(ps.pairs) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrUnknownPair, i, len(ps.pairs))
	}
	return ps.pairs[i], nil
}

// Len returns the number of pairs.
func (ps *PairSet) Len() int {
	return len(ps.pairs)
}

// Names lists pair names in index order.
func (ps *PairSet) Names() []string {
	names := make([]string, len(ps.pairs))
	for i, p := range ps.pairs {
		names[i] = p.Name
	}
	return names
}

// ValidateImage validates a raster for basic requirements
func ValidateImage(g *raster.Gray) error {
	if g == nil {
		return fmt.Errorf("image is nil")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", g.Width, g.Height)
	}
	if g.Width > maxDimension || g.Height > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", g.Width, g.Height, maxDimension)
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("sample count %d does not match %dx%d", len(g.Pix), g.Width, g.Height)
	}
	return nil
}

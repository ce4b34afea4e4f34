// Segmenter registry: backends register themselves by name at init time
package algorithms

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"major-minor-axis/internal/raster"
)

// ErrUnknownSegmenter is returned by Get and Segment for unregistered names.
var ErrUnknownSegmenter = errors.New("unknown segmenter")

// Segmenter turns a background/object pair into a binary foreground mask.
type Segmenter interface {
	// Segment marks a pixel as foreground when |a-b| >= threshold.
	Segment(a, b *raster.Gray, threshold float64) (*raster.Mask, error)

	// GetName returns the registry name.
	GetName() string

	// GetDescription returns a short human readable description.
	GetDescription() string
}

var (
	registryMu sync.RWMutex
	segmenters = make(map[string]Segmenter)
)

// Register makes a segmenter available by name. Registering the same name
// twice replaces the earlier entry.
func Register(name string, s Segmenter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	segmenters[name] = s
}

// Get looks up a registered segmenter.
func Get(name string) (Segmenter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := segmenters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSegmenter, name)
	}
	return s, nil
}

// Segment runs the named segmenter.
func Segment(name string, a, b *raster.Gray, threshold float64) (*raster.Mask, error) {
	s, err := Get(name)
	if err != nil {
		return nil, err
	}
	return s.Segment(a, b, threshold)
}

// Names returns the registered names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(segmenters))
	for name := range segmenters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(NativeSegmenterName, NewAbsDiff())
}

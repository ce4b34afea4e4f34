package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"major-minor-axis/internal/core"
	"major-minor-axis/internal/io"
	"major-minor-axis/internal/raster"
)

// LoadPairs reads every configured pair with loader. Images shared between
// pairs are decoded once.
func (c *Config) LoadPairs(loader io.GrayLoader, logger logrus.FieldLogger) (*core.PairSet, error) {
	cache := make(map[string]*raster.Gray)
	load := func(p string) (*raster.Gray, error) {
		path := c.ResolvePath(p)
		if g, ok := cache[path]; ok {
			return g, nil
		}
		g, err := loader.LoadGrayscale(path)
		if err != nil {
			return nil, err
		}
		if c.Width > 0 && c.Height > 0 && (g.Width != c.Width || g.Height != c.Height) {
			return nil, fmt.Errorf("%s: %w: got %dx%d, configured %dx%d",
				path, raster.ErrDimensionMismatch, g.Width, g.Height, c.Width, c.Height)
		}
		cache[path] = g
		return g, nil
	}

	pairs := core.NewPairSet()
	for i, pc := range c.Pairs {
		name := pc.Name
		if name == "" {
			name = fmt.Sprintf("pair%d", i+1)
		}

		bg, err := load(pc.Background)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", name, err)
		}
		obj, err := load(pc.Object)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", name, err)
		}

		if _, err := pairs.Add(name, bg, obj); err != nil {
			return nil, err
		}
	}

	if pairs.Len() > 0 {
		first, _ := pairs.Get(0)
		for i := 1; i < pairs.Len(); i++ {
			p, _ := pairs.Get(i)
			if p.Width() != first.Width() || p.Height() != first.Height() {
				return nil, fmt.Errorf("pair %q is %dx%d, pair %q is %dx%d: %w",
					p.Name, p.Width(), p.Height(), first.Name, first.Width(), first.Height(), raster.ErrDimensionMismatch)
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"pairs":  pairs.Len(),
		"images": len(cache),
		"assets": c.AssetsDir,
	}).Info("Image pairs loaded")

	return pairs, nil
}

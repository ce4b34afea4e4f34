package main

import (
	"fmt"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/config"
	"major-minor-axis/internal/core"
	"major-minor-axis/internal/io"
	"major-minor-axis/internal/opencv"
)

// backend pairs an image loader with the segmenter of the same family.
type backend struct {
	loader    io.GrayLoader
	segmenter string
}

func (o *options) selectBackend() (backend, error) {
	switch o.cfg.Backend {
	case config.BackendNative:
		return backend{loader: io.NewImageLoader(o.logger), segmenter: algorithms.NativeSegmenterName}, nil
	case config.BackendOpenCV:
		return backend{loader: opencv.NewImageLoader(o.logger), segmenter: opencv.SegmenterName}, nil
	}
	return backend{}, fmt.Errorf("unknown backend %q", o.cfg.Backend)
}

// openPipeline loads the configured pairs and builds the pipeline over them.
func (o *options) openPipeline() (*core.Pipeline, backend, error) {
	b, err := o.selectBackend()
	if err != nil {
		return nil, b, err
	}

	pairs, err := o.cfg.LoadPairs(b.loader, o.logger)
	if err != nil {
		return nil, b, err
	}

	pipeline, err := core.NewPipeline(pairs, b.segmenter, o.logger)
	if err != nil {
		o.logger.WithField("registered", algorithms.Names()).Debug("Segmenter lookup failed")
		return nil, b, err
	}
	if o.cfg.Debug {
		pipeline.EnableDebug()
	}
	return pipeline, b, nil
}

// pairIndex converts a 1-based --pair value to an index.
func pairIndex(pair, count int) (int, error) {
	if pair < 1 || pair > count {
		return 0, fmt.Errorf("%w: --pair %d, have %d pairs", core.ErrUnknownPair, pair, count)
	}
	return pair - 1, nil
}

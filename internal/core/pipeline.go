// internal/core/pipeline.go
// Per-frame recompute: segment the selected pair, then measure the blob
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/raster"
)

// Frame is the result of one recompute.
type Frame struct {
	Pair      int
	Threshold float64
	Mask      *raster.Mask

	// Axes is nil when the mask has no foreground pixels.
	Axes *algorithms.AxisResult
}

// Detected reports whether the frame found an object.
func (f *Frame) Detected() bool {
	return f.Axes != nil
}

// Pipeline runs the segmenter and moment analysis over a PairSet. It is not
// safe for concurrent use; the presenter drives it from a single goroutine.
type Pipeline struct {
	pairs     *PairSet
	segmenter algorithms.Segmenter
	logger    logrus.FieldLogger

	debugger *PipelineDebugger

	onFrame func(*Frame)
	onError func(error)
}

// NewPipeline creates a pipeline using the named segmenter.
func NewPipeline(pairs *PairSet, segmenter string, logger logrus.FieldLogger) (*Pipeline, error) {
	seg, err := algorithms.Get(segmenter)
	if err != nil {
		return nil, err
	}
	if pairs.Len() == 0 {
		return nil, fmt.Errorf("pipeline needs at least one image pair")
	}

	logger.WithFields(logrus.Fields{
		"segmenter": seg.GetName(),
		"pairs":     pairs.Len(),
	}).Info("PIPELINE: Created")

	return &Pipeline{
		pairs:     pairs,
		segmenter: seg,
		logger:    logger,
	}, nil
}

// SetCallbacks sets frame and error callbacks invoked by Recompute.
func (p *Pipeline) SetCallbacks(onFrame func(*Frame), onError func(error)) {
	p.onFrame = onFrame
	p.onError = onError
}

// EnableDebug starts tracking recompute timings.
func (p *Pipeline) EnableDebug() *PipelineDebugger {
	if p.debugger == nil {
		p.debugger = NewPipelineDebugger(p.logger)
	}
	return p.debugger
}

// Debugger returns the tracker, or nil when debugging is off.
func (p *Pipeline) Debugger() *PipelineDebugger {
	return p.debugger
}

// Pairs returns the pair set the pipeline reads from.
func (p *Pipeline) Pairs() *PairSet {
	return p.pairs
}

// Segmenter returns the name of the active segmenter.
func (p *Pipeline) Segmenter() string {
	return p.segmenter.GetName()
}

// Recompute segments the selected pair at the snapshot's threshold and
// analyzes the mask. An empty mask is not an error; the frame simply has
// no axes.
func (p *Pipeline) Recompute(s Snapshot) (*Frame, error) {
	start := time.Now()

	frame, err := p.recompute(s)
	if p.debugger != nil {
		p.debugger.LogRecompute(s, frame, time.Since(start), err)
	}
	if err != nil {
		p.logger.WithError(err).WithField("pair", s.Pair).Error("PIPELINE: Recompute failed")
		if p.onError != nil {
			p.onError(err)
		}
		return nil, err
	}

	fields := logrus.Fields{
		"pair":      s.Pair,
		"threshold": s.Threshold,
		"duration":  time.Since(start),
	}
	if frame.Axes != nil {
		fields["pixels"] = frame.Axes.PixelCount
		fields["angle_deg"] = frame.Axes.MajorDegrees()
	}
	p.logger.WithFields(fields).Debug("PIPELINE: Frame computed")

	if p.onFrame != nil {
		p.onFrame(frame)
	}
	return frame, nil
}

func (p *Pipeline) recompute(s Snapshot) (*Frame, error) {
	pair, err := p.pairs.Get(s.Pair)
	if err != nil {
		return nil, err
	}

	mask, err := p.segmenter.Segment(pair.Background, pair.Object, s.Threshold)
	if err != nil {
		return nil, fmt.Errorf("segmenting pair %q: %w", pair.Name, err)
	}

	frame := &Frame{
		Pair:      s.Pair,
		Threshold: s.Threshold,
		Mask:      mask,
	}

	axes, err := algorithms.Analyze(mask)
	switch {
	case errors.Is(err, raster.ErrDegenerateInput):
		p.logger.WithFields(logrus.Fields{
			"pair":      pair.Name,
			"threshold": s.Threshold,
		}).Debug("PIPELINE: No object detected")
	case err != nil:
		return nil, fmt.Errorf("analyzing pair %q: %w", pair.Name, err)
	default:
		frame.Axes = &axes
	}

	return frame, nil
}

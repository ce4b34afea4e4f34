package core

import (
	"fmt"
	"math"
)

// DefaultThreshold is the segmentation threshold used at startup.
const DefaultThreshold = 0.2

// DefaultStep is the amount one key press moves the threshold.
const DefaultStep = 0.01

// Session holds the values the user changes between frames: the threshold
// and the selected pair. It is owned by the presenter and read by the
// pipeline through Snapshot.
type Session struct {
	threshold float64
	pair      int
	pairs     int
}

// Snapshot is the read-only view of a session used for one recompute.
type Snapshot struct {
	Threshold float64
	Pair      int
}

// NewSession creates a session over pairCount pairs starting at pair 0.
func NewSession(threshold float64, pairCount int) *Session {
	return &Session{
		threshold: clampUnit(threshold),
		pairs:     pairCount,
	}
}

// Threshold returns the current threshold.
func (s *Session) Threshold() float64 { return s.threshold }

// Pair returns the selected pair index.
func (s *Session) Pair() int { return s.pair }

// Raise increases the threshold by step, clamped to 1.
func (s *Session) Raise(step float64) float64 {
	s.threshold = clampUnit(s.threshold + step)
	return s.threshold
}

// Lower decreases the threshold by step, clamped to 0.
func (s *Session) Lower(step float64) float64 {
	s.threshold = clampUnit(s.threshold - step)
	return s.threshold
}

// SetThreshold replaces the threshold, clamped to [0,1].
func (s *Session) SetThreshold(t float64) float64 {
	s.threshold = clampUnit(t)
	return s.threshold
}

// Select switches to pair i. Out of range indexes leave the session as is.
func (s *Session) Select(i int) error {
	if i < 0 || i >= s.pairs {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownPair, i, s.pairs)
	}
	s.pair = i
	return nil
}

// Snapshot copies the current values.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{Threshold: s.threshold, Pair: s.pair}
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

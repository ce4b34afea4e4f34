// internal/core/pipeline_debug.go
// Recompute timing and outcome tracking for debug runs
package core

import (
	"time"

	"github.com/sirupsen/logrus"
)

const maxTrackedOperations = 256

// PipelineOperation records one recompute.
type PipelineOperation struct {
	Timestamp time.Time
	Pair      int
	Threshold float64
	Detected  bool
	Success   bool
	Duration  time.Duration
	Error     string
}

// PipelineStats summarizes the tracked operations.
type PipelineStats struct {
	Operations  int
	Failures    int
	NoObject    int
	AvgDuration time.Duration
	MaxDuration time.Duration
}

// PipelineDebugger keeps a bounded history of recomputes.
type PipelineDebugger struct {
	logger     logrus.FieldLogger
	operations []PipelineOperation
	total      int
	failures   int
	noObject   int
	sum        time.Duration
	max        time.Duration
}

func NewPipelineDebugger(logger logrus.FieldLogger) *PipelineDebugger {
	return &PipelineDebugger{
		logger:     logger,
		operations: make([]PipelineOperation, 0, maxTrackedOperations),
	}
}

// LogRecompute records the outcome of one recompute.
func (pd *PipelineDebugger) LogRecompute(s Snapshot, frame *Frame, duration time.Duration, err error) {
	op := PipelineOperation{
		Timestamp: time.Now(),
		Pair:      s.Pair,
		Threshold: s.Threshold,
		Success:   err == nil,
		Duration:  duration,
	}
	if err != nil {
		op.Error = err.Error()
		pd.failures++
	}
	if frame != nil {
		op.Detected = frame.Detected()
		if !op.Detected {
			pd.noObject++
		}
	}

	if len(pd.operations) == maxTrackedOperations {
		copy(pd.operations, pd.operations[1:])
		pd.operations = pd.operations[:maxTrackedOperations-1]
	}
	pd.operations = append(pd.operations, op)

	pd.total++
	pd.sum += duration
	if duration > pd.max {
		pd.max = duration
	}

	pd.logger.WithFields(logrus.Fields{
		"pair":      op.Pair,
		"threshold": op.Threshold,
		"detected":  op.Detected,
		"success":   op.Success,
		"duration":  op.Duration,
	}).Trace("PIPELINE Debug")
}

// Recent returns up to n of the most recent operations, oldest first.
func (pd *PipelineDebugger) Recent(n int) []PipelineOperation {
	if n > len(pd.operations) {
		n = len(pd.operations)
	}
	out := make([]PipelineOperation, n)
	copy(out, pd.operations[len(pd.operations)-n:])
	return out
}

func (pd *PipelineDebugger) Stats() PipelineStats {
	stats := PipelineStats{
		Operations:  pd.total,
		Failures:    pd.failures,
		NoObject:    pd.noObject,
		MaxDuration: pd.max,
	}
	if pd.total > 0 {
		stats.AvgDuration = pd.sum / time.Duration(pd.total)
	}
	return stats
}

// LogSummary writes the stats at info level.
func (pd *PipelineDebugger) LogSummary() {
	stats := pd.Stats()
	pd.logger.WithFields(logrus.Fields{
		"operations":   stats.Operations,
		"failures":     stats.Failures,
		"no_object":    stats.NoObject,
		"avg_duration": stats.AvgDuration,
		"max_duration": stats.MaxDuration,
	}).Info("PIPELINE: Debug summary")
}

// internal/gui/presenter.go
// Input handling and per-tick recompute, independent of the window
package gui

import (
	"errors"
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"major-minor-axis/internal/core"
	"major-minor-axis/internal/overlay"
)

// Presenter owns the session and turns key input into threshold and pair
// changes. Tick recomputes when the session differs from the last attempt.
type Presenter struct {
	session  *core.Session
	pipeline *core.Pipeline
	style    overlay.Style
	step     float64
	logger   logrus.FieldLogger

	// attempted is the snapshot of the last recompute, failed or not.
	attempted *core.Snapshot
	frame     *core.Frame
	image    *image.RGBA
}

func NewPresenter(session *core.Session, pipeline *core.Pipeline, style overlay.Style, step float64, logger logrus.FieldLogger) *Presenter {
	return &Presenter{
		session:  session,
		pipeline: pipeline,
		style:    style,
		step:     step,
		logger:   logger,
	}
}

// HandleRune selects pair 0..8 for keys '1'..'9'. It reports whether the
// session changed.
func (p *Presenter) HandleRune(r rune) bool {
	if r < '1' || r > '9' {
		return false
	}
	i := int(r - '1')
	if i == p.session.Pair() {
		return false
	}
	if err := p.session.Select(i); err != nil {
		if errors.Is(err, core.ErrUnknownPair) {
			p.logger.WithField("key", string(r)).Debug("GUI: No pair for key")
			return false
		}
		p.logger.WithError(err).Warn("GUI: Pair selection failed")
		return false
	}
	p.logger.WithField("pair", i).Debug("GUI: Pair selected")
	return true
}

// HandleKey moves the threshold for the Up and Down keys.
func (p *Presenter) HandleKey(name fyne.KeyName) bool {
	before := p.session.Threshold()
	switch name {
	case fyne.KeyUp:
		p.session.Raise(p.step)
	case fyne.KeyDown:
		p.session.Lower(p.step)
	default:
		return false
	}

	changed := p.session.Threshold() != before
	if changed {
		p.logger.WithField("threshold", p.session.Threshold()).Debug("GUI: Threshold changed")
	}
	return changed
}

// Tick recomputes the frame if the session changed since the last
// recompute. It returns the composite and whether it is new. A failing
// session state reports its error once and is not retried until the
// session changes.
func (p *Presenter) Tick() (*image.RGBA, bool, error) {
	snap := p.session.Snapshot()
	if p.attempted != nil && *p.attempted == snap {
		return p.image, false, nil
	}
	p.attempted = &snap

	frame, err := p.pipeline.Recompute(snap)
	if err != nil {
		return p.image, false, err
	}
	pair, err := p.pipeline.Pairs().Get(frame.Pair)
	if err != nil {
		return p.image, false, err
	}

	p.frame = frame
	p.image = overlay.Composite(frame, pair, p.style)
	return p.image, true, nil
}

// Frame returns the last computed frame, or nil before the first Tick.
func (p *Presenter) Frame() *core.Frame {
	return p.frame
}

// Status describes the last frame for the status line.
func (p *Presenter) Status() string {
	if p.frame == nil {
		return "loading"
	}
	pair, err := p.pipeline.Pairs().Get(p.frame.Pair)
	if err != nil {
		return err.Error()
	}
	return StatusLine(p.frame, pair.Name, p.pipeline.Pairs().Len())
}

// StatusLine formats pair, threshold and measurement for display.
func StatusLine(frame *core.Frame, name string, pairs int) string {
	head := fmt.Sprintf("[%d/%d] %s  threshold %.2f", frame.Pair+1, pairs, name, frame.Threshold)
	if frame.Axes == nil {
		return head + "  " + overlay.NoObjectText
	}
	return fmt.Sprintf("%s  pixels %d  centroid (%.1f, %.1f)  major %.1f°",
		head, frame.Axes.PixelCount, frame.Axes.Centroid.X, frame.Axes.Centroid.Y, frame.Axes.MajorDegrees())
}

package gui

import (
	"errors"
	"math"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus/hooks/test"

	"major-minor-axis/internal/algorithms"
	"major-minor-axis/internal/core"
	"major-minor-axis/internal/overlay"
	"major-minor-axis/internal/raster"
)

func newTestPresenter(t *testing.T) (*Presenter, *core.Session) {
	t.Helper()
	logger, _ := test.NewNullLogger()

	pairs := core.NewPairSet()
	bg := raster.NewGray(40, 30)
	obj := raster.NewGray(40, 30)
	for x := 10; x < 30; x++ {
		obj.Set(x, 15, 0.5)
	}
	if _, err := pairs.Add("bar", bg, obj); err != nil {
		t.Fatal(err)
	}
	if _, err := pairs.Add("blank", raster.NewGray(40, 30), raster.NewGray(40, 30)); err != nil {
		t.Fatal(err)
	}

	pipeline, err := core.NewPipeline(pairs, algorithms.NativeSegmenterName, logger)
	if err != nil {
		t.Fatal(err)
	}
	session := core.NewSession(core.DefaultThreshold, pairs.Len())
	return NewPresenter(session, pipeline, overlay.DefaultStyle(), core.DefaultStep, logger), session
}

func TestPresenterKeys(t *testing.T) {
	p, session := newTestPresenter(t)

	if !p.HandleKey(fyne.KeyUp) {
		t.Fatal("Up should change the threshold")
	}
	if got := session.Threshold(); math.Abs(got-0.21) > 1e-9 {
		t.Fatalf("threshold %v, want 0.21", got)
	}
	if !p.HandleKey(fyne.KeyDown) || math.Abs(session.Threshold()-core.DefaultThreshold) > 1e-9 {
		t.Fatalf("Down: threshold %v", session.Threshold())
	}
	if p.HandleKey(fyne.KeyLeft) {
		t.Fatal("Left should be ignored")
	}

	session.SetThreshold(1)
	if p.HandleKey(fyne.KeyUp) {
		t.Fatal("Up at 1 should not report a change")
	}
}

func TestPresenterRunes(t *testing.T) {
	p, session := newTestPresenter(t)

	if !p.HandleRune('2') || session.Pair() != 1 {
		t.Fatalf("'2' selected pair %d", session.Pair())
	}
	if p.HandleRune('2') {
		t.Fatal("selecting the current pair should not report a change")
	}
	if p.HandleRune('9') || session.Pair() != 1 {
		t.Fatalf("'9' with two pairs changed pair to %d", session.Pair())
	}
	if p.HandleRune('a') || p.HandleRune('0') {
		t.Fatal("non pair keys should be ignored")
	}
}

func TestPresenterTick(t *testing.T) {
	p, _ := newTestPresenter(t)

	if p.Status() != "loading" {
		t.Fatalf("status before first tick: %q", p.Status())
	}

	img, changed, err := p.Tick()
	if err != nil || !changed || img == nil {
		t.Fatalf("first tick: changed %v err %v", changed, err)
	}
	if got := img.Bounds().Dx(); got != 3*40+2*overlay.DefaultStyle().Spacer {
		t.Fatalf("composite width %d", got)
	}
	if !p.Frame().Detected() || p.Frame().Axes.MajorAngle != 0 {
		t.Fatalf("unexpected frame %+v", p.Frame().Axes)
	}
	if !strings.Contains(p.Status(), "pixels 20") {
		t.Fatalf("status %q", p.Status())
	}

	if _, changed, _ := p.Tick(); changed {
		t.Fatal("second tick without input should not recompute")
	}

	p.HandleRune('2')
	if _, changed, _ := p.Tick(); !changed {
		t.Fatal("tick after pair change should recompute")
	}
	if !strings.Contains(p.Status(), overlay.NoObjectText) {
		t.Fatalf("status %q", p.Status())
	}
}

func TestPresenterThresholdHidesObject(t *testing.T) {
	p, session := newTestPresenter(t)

	session.SetThreshold(0.6)
	if _, _, err := p.Tick(); err != nil {
		t.Fatal(err)
	}
	if p.Frame().Detected() {
		t.Fatal("difference 0.5 should be below threshold 0.6")
	}
}

func TestPresenterFailedStateReportsOnce(t *testing.T) {
	p, _ := newTestPresenter(t)

	// The session knows one more pair than the pipeline holds.
	session := core.NewSession(core.DefaultThreshold, p.pipeline.Pairs().Len()+1)
	p.session = session
	if err := session.Select(2); err != nil {
		t.Fatal(err)
	}

	var failures int
	p.pipeline.SetCallbacks(nil, func(error) { failures++ })

	if _, changed, err := p.Tick(); !errors.Is(err, core.ErrUnknownPair) || changed {
		t.Fatalf("first tick: changed %v err %v", changed, err)
	}
	for i := 0; i < 5; i++ {
		if _, changed, err := p.Tick(); err != nil || changed {
			t.Fatalf("repeat tick %d: changed %v err %v", i, changed, err)
		}
	}
	if failures != 1 {
		t.Fatalf("recompute failed %d times, want 1", failures)
	}

	if err := session.Select(0); err != nil {
		t.Fatal(err)
	}
	if _, changed, err := p.Tick(); err != nil || !changed {
		t.Fatalf("tick after recovery: changed %v err %v", changed, err)
	}
}

// internal/gui/app.go
// Main window with the composite view and status line
package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"major-minor-axis/internal/core"
	"major-minor-axis/internal/overlay"
)

const WindowTitle = "Major/Minor Axis"

// Options configures the presenter window.
type Options struct {
	Step      float64
	FrameRate int
	Style     overlay.Style
}

// Application is the interactive presenter window.
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    logrus.FieldLogger
	presenter *Presenter
	pipeline  *core.Pipeline
	frameRate int

	canvas *FrameCanvas
	status *widget.Label

	stop chan struct{}
}

func NewApplication(app fyne.App, session *core.Session, pipeline *core.Pipeline, opts Options, logger logrus.FieldLogger) (*Application, error) {
	first, err := pipeline.Pairs().Get(0)
	if err != nil {
		return nil, err
	}

	a := &Application{
		app:       app,
		window:    app.NewWindow(WindowTitle),
		logger:    logger,
		presenter: NewPresenter(session, pipeline, opts.Style, opts.Step, logger),
		pipeline:  pipeline,
		frameRate: opts.FrameRate,
		stop:      make(chan struct{}),
	}

	size := overlay.CompositeSize(first.Width(), first.Height(), opts.Style)
	a.canvas = NewFrameCanvas(size)
	a.status = widget.NewLabel("loading")

	a.setupLayout()
	a.setupCallbacks()

	logger.WithFields(logrus.Fields{
		"width":      size.X,
		"height":     size.Y,
		"frame_rate": opts.FrameRate,
	}).Info("GUI: Window created")

	return a, nil
}

func (a *Application) setupLayout() {
	content := container.NewBorder(nil, a.status, nil, nil, a.canvas.GetContainer())
	a.window.SetContent(content)
	a.window.SetFixedSize(true)
	a.window.CenterOnScreen()
}

func (a *Application) setupCallbacks() {
	// Key events are delivered on the main goroutine, as are ticks.
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.presenter.HandleRune(r) {
			a.render()
		}
	})
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if a.presenter.HandleKey(ev.Name) {
			a.render()
		}
	})

	a.pipeline.SetCallbacks(nil, func(err error) {
		a.status.SetText(fmt.Sprintf("error: %v", err))
	})

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})
}

// render runs one presenter tick and pushes the result to the widgets.
func (a *Application) render() {
	img, changed, err := a.presenter.Tick()
	if err != nil {
		a.logger.WithError(err).Error("GUI: Frame failed")
		return
	}
	if !changed {
		return
	}
	a.canvas.Update(img)
	a.status.SetText(a.presenter.Status())
}

func (a *Application) runClock() {
	ticker := time.NewTicker(time.Second / time.Duration(a.frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			fyne.Do(a.render)
		}
	}
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main window")

	a.render()
	go a.runClock()

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Stopping frame clock")
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if d := a.pipeline.Debugger(); d != nil {
		d.LogSummary()
	}
}

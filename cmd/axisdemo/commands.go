package main

import (
	"encoding/json"
	"fmt"
	"io"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"major-minor-axis/internal/core"
	"major-minor-axis/internal/gui"
	imageio "major-minor-axis/internal/io"
	"major-minor-axis/internal/overlay"
)

func newGUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the interactive window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}
}

func runGUI(opts *options) error {
	pipeline, _, err := opts.openPipeline()
	if err != nil {
		return err
	}
	session := core.NewSession(opts.cfg.Threshold, pipeline.Pairs().Len())

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp, err := gui.NewApplication(myApp, session, pipeline, gui.Options{
		Step:      opts.cfg.Step,
		FrameRate: opts.cfg.FrameRate,
		Style:     opts.cfg.Style(),
	}, opts.logger)
	if err != nil {
		return err
	}
	mainApp.ShowAndRun()

	opts.logger.Info("Application shutting down gracefully")
	return nil
}

type analyzeFlags struct {
	pair      int
	threshold float64
	json      bool
}

func newAnalyzeCommand(opts *options) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print centroid and axis angles for one or all pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				f.threshold = opts.cfg.Threshold
			}
			return runAnalyze(opts, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&f.pair, "pair", 0, "1-based pair number, 0 for all pairs")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "segmentation threshold in [0,1] (default from config)")
	cmd.Flags().BoolVar(&f.json, "json", false, "write JSON instead of text")
	return cmd
}

// AnalyzeResult is one line of analyze output.
type AnalyzeResult struct {
	Pair      int           `json:"pair"`
	Name      string        `json:"name"`
	Threshold float64       `json:"threshold"`
	Detected  bool          `json:"detected"`
	Pixels    int           `json:"pixels,omitempty"`
	Centroid  *CentroidJSON `json:"centroid,omitempty"`
	MajorDeg  *float64      `json:"major_deg,omitempty"`
	MinorDeg  *float64      `json:"minor_deg,omitempty"`
}

type CentroidJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func runAnalyze(opts *options, f *analyzeFlags, out io.Writer) error {
	pipeline, _, err := opts.openPipeline()
	if err != nil {
		return err
	}
	session := core.NewSession(f.threshold, pipeline.Pairs().Len())

	indexes, err := selectPairs(f.pair, pipeline.Pairs().Len())
	if err != nil {
		return err
	}

	results := make([]AnalyzeResult, 0, len(indexes))
	for _, i := range indexes {
		if err := session.Select(i); err != nil {
			return err
		}
		frame, err := pipeline.Recompute(session.Snapshot())
		if err != nil {
			return err
		}
		pair, _ := pipeline.Pairs().Get(i)
		results = append(results, newAnalyzeResult(frame, pair.Name))
	}

	if d := pipeline.Debugger(); d != nil {
		d.LogSummary()
	}

	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if !r.Detected {
			fmt.Fprintf(out, "%d %s: threshold %.2f: %s\n", r.Pair, r.Name, r.Threshold, overlay.NoObjectText)
			continue
		}
		fmt.Fprintf(out, "%d %s: threshold %.2f: pixels %d centroid (%.2f, %.2f) major %.2f° minor %.2f°\n",
			r.Pair, r.Name, r.Threshold, r.Pixels, r.Centroid.X, r.Centroid.Y, *r.MajorDeg, *r.MinorDeg)
	}
	return nil
}

func newAnalyzeResult(frame *core.Frame, name string) AnalyzeResult {
	r := AnalyzeResult{
		Pair:      frame.Pair + 1,
		Name:      name,
		Threshold: frame.Threshold,
		Detected:  frame.Detected(),
	}
	if frame.Axes != nil {
		r.Pixels = frame.Axes.PixelCount
		r.Centroid = &CentroidJSON{X: frame.Axes.Centroid.X, Y: frame.Axes.Centroid.Y}
		major, minor := frame.Axes.MajorDegrees(), frame.Axes.MinorDegrees()
		r.MajorDeg = &major
		r.MinorDeg = &minor
	}
	return r
}

func selectPairs(pair, count int) ([]int, error) {
	if pair == 0 {
		all := make([]int, count)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	i, err := pairIndex(pair, count)
	if err != nil {
		return nil, err
	}
	return []int{i}, nil
}

type renderFlags struct {
	out       string
	pair      int
	threshold float64
}

func newRenderCommand(opts *options) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the background, object and annotated mask side by side to an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				f.threshold = opts.cfg.Threshold
			}
			return runRender(opts, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&f.out, "out", "", "output path (.png, .jpg or .jpeg)")
	cmd.Flags().IntVar(&f.pair, "pair", 1, "1-based pair number")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "segmentation threshold in [0,1] (default from config)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runRender(opts *options, f *renderFlags, out io.Writer) error {
	if !imageio.IsSavableFormat(f.out) {
		return fmt.Errorf("unsupported output format: %s", f.out)
	}

	pipeline, b, err := opts.openPipeline()
	if err != nil {
		return err
	}

	i, err := pairIndex(f.pair, pipeline.Pairs().Len())
	if err != nil {
		return err
	}
	session := core.NewSession(f.threshold, pipeline.Pairs().Len())
	if err := session.Select(i); err != nil {
		return err
	}

	frame, err := pipeline.Recompute(session.Snapshot())
	if err != nil {
		return err
	}
	pair, _ := pipeline.Pairs().Get(i)

	img := overlay.Composite(frame, pair, opts.cfg.Style())
	if err := b.loader.SaveImage(img, f.out); err != nil {
		return err
	}

	opts.logger.WithFields(logrus.Fields{
		"out":      f.out,
		"pair":     pair.Name,
		"detected": frame.Detected(),
	}).Info("Composite written")
	if _, err := fmt.Fprintln(out, f.out); err != nil {
		return err
	}
	return nil
}

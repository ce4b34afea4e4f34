package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"major-minor-axis/internal/core"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// setupAssets writes a black background, an object with a one pixel high white bar
// and a copy of the background, plus a config naming both pairs.
func setupAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	bg := image.NewGray(image.Rect(0, 0, 32, 24))
	obj := image.NewGray(image.Rect(0, 0, 32, 24))
	for x := 8; x < 24; x++ {
		obj.SetGray(x, 12, color.Gray{Y: 255})
	}
	writePNG(t, filepath.Join(dir, "bg.png"), bg)
	writePNG(t, filepath.Join(dir, "bar.png"), obj)

	cfg := fmt.Sprintf(`
width = 32
height = 24
assets_dir = %q

[[pairs]]
name = "bar"
background = "bg.png"
object = "bar.png"

[[pairs]]
name = "empty"
background = "bg.png"
object = "bg.png"
`, dir)
	path := filepath.Join(dir, "axisdemo.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(&options{})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	cfg := setupAssets(t)

	out, err := execute(t, "--config", cfg, "analyze", "--json")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	var results []AnalyzeResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	bar := results[0]
	if !bar.Detected || bar.Pixels != 16 || bar.MajorDeg == nil || bar.MinorDeg == nil {
		t.Fatalf("unexpected bar result %+v", bar)
	}
	if *bar.MajorDeg != 0 || *bar.MinorDeg != 90 {
		t.Fatalf("angles %v/%v, want 0/90", *bar.MajorDeg, *bar.MinorDeg)
	}
	if bar.Centroid.X != 15.5 || bar.Centroid.Y != 12 {
		t.Fatalf("centroid %+v", bar.Centroid)
	}
	if bar.Threshold != 0.2 {
		t.Fatalf("threshold %v, want config default", bar.Threshold)
	}

	if empty := results[1]; empty.Detected || empty.Centroid != nil || empty.MajorDeg != nil {
		t.Fatalf("unexpected empty result %+v", empty)
	}
}

func TestAnalyzeJSONKeepsZeroAngle(t *testing.T) {
	cfg := setupAssets(t)

	out, err := execute(t, "--config", cfg, "analyze", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(raw) != 2 {
		t.Fatalf("got %d results", len(raw))
	}

	bar := raw[0]
	for _, key := range []string{"major_deg", "minor_deg", "centroid", "pixels"} {
		if _, ok := bar[key]; !ok {
			t.Errorf("horizontal bar result has no %q key: %v", key, bar)
		}
	}
	if v, _ := bar["major_deg"].(float64); v != 0 {
		t.Errorf("major_deg = %v, want 0", bar["major_deg"])
	}

	for _, key := range []string{"major_deg", "minor_deg", "centroid"} {
		if _, ok := raw[1][key]; ok {
			t.Errorf("empty result has %q key: %v", key, raw[1])
		}
	}
}

func TestAnalyzeText(t *testing.T) {
	cfg := setupAssets(t)

	out, err := execute(t, "--config", cfg, "analyze", "--pair", "2", "--threshold", "0.5")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2 empty: threshold 0.50: no object detected\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestAnalyzeUnknownPair(t *testing.T) {
	cfg := setupAssets(t)

	_, err := execute(t, "--config", cfg, "analyze", "--pair", "3")
	if !errors.Is(err, core.ErrUnknownPair) {
		t.Fatalf("got %v, want ErrUnknownPair", err)
	}
}

func TestRender(t *testing.T) {
	cfg := setupAssets(t)
	out := filepath.Join(t.TempDir(), "frame.png")

	printed, err := execute(t, "--config", cfg, "render", "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	if printed != out+"\n" {
		t.Fatalf("render printed %q, want %q", printed, out+"\n")
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), image.Pt(3*32+2*10, 24); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}

	if _, err := execute(t, "--config", cfg, "render", "--out", "frame.gif"); err == nil {
		t.Fatal("expected error for gif output")
	}
}

func TestBackendFlagValidation(t *testing.T) {
	cfg := setupAssets(t)

	if _, err := execute(t, "--config", cfg, "--backend", "cuda", "analyze"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSelectPairs(t *testing.T) {
	all, err := selectPairs(0, 3)
	if err != nil || len(all) != 3 || all[2] != 2 {
		t.Fatalf("selectPairs(0, 3) = %v, %v", all, err)
	}
	one, err := selectPairs(2, 3)
	if err != nil || len(one) != 1 || one[0] != 1 {
		t.Fatalf("selectPairs(2, 3) = %v, %v", one, err)
	}
	if _, err := selectPairs(-1, 3); !errors.Is(err, core.ErrUnknownPair) {
		t.Fatalf("selectPairs(-1, 3) = %v", err)
	}
}

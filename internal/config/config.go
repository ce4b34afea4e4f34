// internal/config/config.go
// TOML configuration with environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"major-minor-axis/internal/io"
	"major-minor-axis/internal/overlay"
)

const (
	BackendNative = "native"
	BackendOpenCV = "opencv"

	// MaxPairs is the number of pairs reachable from the number keys.
	MaxPairs = 9
)

// Environment overrides.
const (
	EnvDebug   = "AXISDEMO_DEBUG"
	EnvBackend = "AXISDEMO_BACKEND"
	EnvAssets  = "AXISDEMO_ASSETS"
)

type Config struct {
	Debug   bool   `toml:"debug"`
	Backend string `toml:"backend"`

	Threshold float64 `toml:"threshold"`
	Step      float64 `toml:"step"`

	// Expected image size. Zero disables the check.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	FrameRate int `toml:"frame_rate"`

	AssetsDir string        `toml:"assets_dir"`
	Pairs     []PairConfig  `toml:"pairs"`
	Overlay   OverlayConfig `toml:"overlay"`
}

type PairConfig struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Object     string `toml:"object"`
}

type OverlayConfig struct {
	Spacer         int     `toml:"spacer"`
	CentroidRadius float64 `toml:"centroid_radius"`
	MajorRadius    float64 `toml:"major_radius"`
	MinorRadius    float64 `toml:"minor_radius"`
	LineWidth      float64 `toml:"line_width"`
}

// Default returns the built-in configuration: five objects photographed
// against one shared background.
func Default() *Config {
	pairs := make([]PairConfig, 5)
	for i := range pairs {
		pairs[i] = PairConfig{
			Name:       fmt.Sprintf("image%d", i+1),
			Background: "image-bg.jpg",
			Object:     fmt.Sprintf("image%d.jpg", i+1),
		}
	}

	style := overlay.DefaultStyle()
	return &Config{
		Backend:   BackendNative,
		Threshold: 0.2,
		Step:      0.01,
		Width:     320,
		Height:    240,
		FrameRate: 60,
		AssetsDir: "assets",
		Pairs:     pairs,
		Overlay: OverlayConfig{
			Spacer:         style.Spacer,
			CentroidRadius: style.CentroidRadius,
			MajorRadius:    style.MajorRadius,
			MinorRadius:    style.MinorRadius,
			LineWidth:      style.LineWidth,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path uses the defaults alone. A relative
// assets directory is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	baseDir := "."

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		baseDir = filepath.Dir(path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.AssetsDir) {
		cfg.AssetsDir = filepath.Join(baseDir, cfg.AssetsDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvAssets); v != "" {
		c.AssetsDir = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendOpenCV:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendNative, BackendOpenCV)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v out of range [0,1]", c.Threshold)
	}
	if c.Step <= 0 || c.Step > 1 {
		return fmt.Errorf("step %v out of range (0,1]", c.Step)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("frame rate %d out of range (0,240]", c.FrameRate)
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("no image pairs configured")
	}
	if len(c.Pairs) > MaxPairs {
		return fmt.Errorf("%d image pairs configured, at most %d can be selected", len(c.Pairs), MaxPairs)
	}
	for i, p := range c.Pairs {
		if p.Background == "" || p.Object == "" {
			return fmt.Errorf("pair %d: background and object are required", i+1)
		}
		for _, path := range []string{p.Background, p.Object} {
			if !io.IsSupportedImageFormat(path) {
				return fmt.Errorf("pair %d: unsupported image format: %s", i+1, path)
			}
		}
	}

	o := c.Overlay
	if o.Spacer < 0 {
		return fmt.Errorf("overlay spacer %d is negative", o.Spacer)
	}
	if o.CentroidRadius < 0 || o.MajorRadius < 0 || o.MinorRadius < 0 {
		return fmt.Errorf("overlay radii must not be negative")
	}
	if o.LineWidth <= 0 {
		return fmt.Errorf("overlay line width %v must be positive", o.LineWidth)
	}
	return nil
}

// ResolvePath joins a relative image path onto the assets directory.
func (c *Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.AssetsDir, p)
}

// Style returns the overlay style for this configuration.
func (c *Config) Style() overlay.Style {
	style := overlay.DefaultStyle()
	style.Spacer = c.Overlay.Spacer
	style.CentroidRadius = c.Overlay.CentroidRadius
	style.MajorRadius = c.Overlay.MajorRadius
	style.MinorRadius = c.Overlay.MinorRadius
	style.LineWidth = c.Overlay.LineWidth
	return style
}

// Package config loads the viewer settings from a TOML file and watches it
// for live changes to the tunable light parameters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"haunted-house/core"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window   Window   `toml:"window"`
	Render   Render   `toml:"render"`
	Controls Controls `toml:"controls"`
	Assets   Assets   `toml:"assets"`
	Log      Log      `toml:"log"`
	Tunables Tunables `toml:"tunables"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Render struct {
	MaxPixelRatio float64 `toml:"max_pixel_ratio"`
	// Background is the clear color, "#rrggbb" or a CSS color name.
	Background string `toml:"background"`
}

type Controls struct {
	Damping       bool    `toml:"damping"`
	DampingFactor float32 `toml:"damping_factor"`
	RotateSpeed   float32 `toml:"rotate_speed"`
	ZoomSpeed     float32 `toml:"zoom_speed"`
	PanSpeed      float32 `toml:"pan_speed"`
	MinDistance   float32 `toml:"min_distance"`
	MaxDistance   float32 `toml:"max_distance"`
}

type Assets struct {
	Root    string `toml:"root"`
	Workers int    `toml:"workers"`
}

type Log struct {
	Level string `toml:"level"`
}

// Tunables overrides the live-adjustable light parameters. Unset fields
// leave the scene's values alone.
type Tunables struct {
	AmbientIntensity *float64 `toml:"ambient_intensity"`
	MoonIntensity    *float64 `toml:"moon_intensity"`
	MoonX            *float64 `toml:"moon_x"`
	MoonY            *float64 `toml:"moon_y"`
	MoonZ            *float64 `toml:"moon_z"`
}

// Values maps the set fields to their debug panel labels.
func (t Tunables) Values() map[string]float64 {
	out := make(map[string]float64)
	for label, v := range map[string]*float64{
		"ambient intensity": t.AmbientIntensity,
		"moon intensity":    t.MoonIntensity,
		"moon x":            t.MoonX,
		"moon y":            t.MoonY,
		"moon z":            t.MoonZ,
	} {
		if v != nil {
			out[label] = *v
		}
	}
	return out
}

func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Haunted House", VSync: true},
		Render: Render{MaxPixelRatio: 2, Background: "#262837"},
		Controls: Controls{
			Damping:       true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			PanSpeed:      1,
			MinDistance:   0.5,
			MaxDistance:   50,
		},
		Assets: Assets{Root: "static", Workers: 4},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// an empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("%w: %s", ErrInvalid, serr.String())
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Render.MaxPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_pixel_ratio %v", ErrInvalid, c.Render.MaxPixelRatio))
	}
	if _, err := core.ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("%w: background: %v", ErrInvalid, err))
	}
	if c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("%w: damping_factor %v", ErrInvalid, c.Controls.DampingFactor))
	}
	if c.Controls.MinDistance > c.Controls.MaxDistance {
		errs = append(errs, fmt.Errorf("%w: min_distance %v above max_distance %v", ErrInvalid, c.Controls.MinDistance, c.Controls.MaxDistance))
	}
	if c.Assets.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers %d", ErrInvalid, c.Assets.Workers))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return l, nil
}

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2.0, cfg.Render.MaxPixelRatio)
	assert.Equal(t, "#262837", cfg.Render.Background)
	assert.Equal(t, float32(0.05), cfg.Controls.DampingFactor)
	assert.Empty(t, cfg.Tunables.Values())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 640

[render]
max_pixel_ratio = 1.5

[log]
level = "debug"

[tunables]
moon_intensity = 0.4
moon_y = 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, 1.5, cfg.Render.MaxPixelRatio)
	assert.Equal(t, map[string]float64{"moon intensity": 0.4, "moon y": 3}, cfg.Tunables.Values())

	lvl, err := ParseLevel(cfg.Log.Level)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Parse([]byte("[window]\ncolour = \"red\"\n"), &cfg)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Render.Background = "not-a-color"
	cfg.Assets.Workers = 0
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	for _, want := range []string{"window size", "background", "workers", "log level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestWatchDeliversTunables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Tunables, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(tn Tunables) { got <- tn })
	}()

	// The watcher may not be registered yet, so keep writing until it sees one.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	var tn Tunables
wait:
	for {
		select {
		case tn = <-got:
			if tn.AmbientIntensity != nil {
				break wait
			}
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("[tunables]\nambient_intensity = 0.5\n"), 0o644))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
	require.NotNil(t, tn.AmbientIntensity)
	assert.Equal(t, 0.5, *tn.AmbientIntensity)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

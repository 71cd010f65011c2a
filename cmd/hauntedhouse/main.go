package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"haunted-house/app"
	"haunted-house/config"
	"haunted-house/renderer"
	"haunted-house/window"
)

const shutdownTimeout = 2 * time.Second

type flags struct {
	config   string
	assets   string
	width    int
	height   int
	logLevel string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "hauntedhouse",
		Short:        "Orbit around a small haunted house at night",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f.config)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "hauntedhouse.toml", "TOML settings file, watched for tunable edits")
	cmd.Flags().StringVar(&f.assets, "assets", "", "directory holding the textures/ tree")
	cmd.Flags().IntVar(&f.width, "width", 0, "initial window width")
	cmd.Flags().IntVar(&f.height, "height", 0, "initial window height")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("assets") {
		cfg.Assets.Root = f.assets
	}
	if fl.Changed("width") {
		cfg.Window.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Window.Height = f.height
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

func run(ctx context.Context, cfg config.Config, configPath string) error {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	win, err := window.New(window.Config{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	engine, err := renderer.NewRenderEngine(win, logger)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	keys := app.KeyMap{Next: window.KeyTab, Increase: window.KeyUp, Decrease: window.KeyDown}
	a, err := app.New(win, engine, os.DirFS(cfg.Assets.Root), cfg, keys, logger)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	win.SetResizeCallback(a.OnResize)
	win.SetCursorCallback(a.OnCursor)
	win.SetMouseButtonCallback(a.OnMouseButton)
	win.SetScrollCallback(a.OnScroll)
	win.SetKeyCallback(func(key int, shift bool) {
		if key == window.KeyEscape {
			win.Handle.SetShouldClose(true)
			return
		}
		a.OnKey(key, shift)
	})

	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}
	runErr := a.Run(ctx, configPath)

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	return runErr
}

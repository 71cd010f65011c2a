// Package app wires the haunted house viewer together: texture loading,
// scene assembly, the viewport, the debug panel and the frame loop.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"haunted-house/assembly"
	"haunted-house/assets"
	"haunted-house/config"
	"haunted-house/core"
	"haunted-house/debugpanel"
	"haunted-house/frameloop"
	"haunted-house/scene"
	"haunted-house/viewport"
)

// Host is the window the viewer runs in. PollEvents dispatches the
// callbacks registered with the App's On* methods.
type Host interface {
	Size() (int, int)
	PixelRatio() float64
	SetTitle(title string)
	SwapBuffers()
	PollEvents()
	ShouldClose() bool
}

// Surface renders the scene and takes its size from the viewport.
type Surface interface {
	frameloop.Renderer
	viewport.Surface
}

// App owns every long-lived component. All methods except Reload run on
// the loop goroutine.
type App struct {
	cfg  config.Config
	log  *slog.Logger
	host Host

	Textures    *assets.Loader
	Scene       *scene.Scene
	House       *assembly.House
	Environment *assembly.Environment
	Viewport    *viewport.Controller
	Panel       *debugpanel.Panel
	Input       *Input
	Loop        *frameloop.Loop

	reloadMu sync.Mutex
	reload   *config.Tunables
	title    string
}

// New builds the scene and every component around it. Assembly or
// validation errors abort construction.
func New(host Host, surface Surface, fsys fs.FS, cfg config.Config, keys KeyMap, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: logger, host: host}

	a.Textures = assets.NewLoader(fsys, cfg.Assets.Workers, logger.With("component", "assets"))

	a.Scene = scene.NewScene()
	house, err := assembly.BuildHouse(a.Textures)
	if err != nil {
		return nil, fmt.Errorf("build house: %w", err)
	}
	if err := a.Scene.Add(house.Group); err != nil {
		return nil, fmt.Errorf("add house: %w", err)
	}
	a.House = house

	env, err := assembly.BuildEnvironment(a.Scene)
	if err != nil {
		return nil, fmt.Errorf("build environment: %w", err)
	}
	a.Environment = env

	bg, err := core.ParseColor(cfg.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	a.Scene.Background = bg

	if err := a.Scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	w, h := host.Size()
	a.Viewport = viewport.NewController(surface, w, h, host.PixelRatio(), viewportOptions(cfg))

	a.Panel = debugpanel.New(logger.With("component", "panel"))
	for _, t := range env.Tunables() {
		b, err := a.Panel.Bind(t.Target, t.Field, t.Min, t.Max, t.Step)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", t.Label, err)
		}
		b.Name(t.Label)
	}
	a.ApplyTunables(cfg.Tunables)

	a.Input = NewInput(a.Viewport, a.Panel, keys)

	a.Loop = &frameloop.Loop{
		Scene:     a.Scene,
		Camera:    a.Viewport.Camera(),
		Controls:  a.Viewport,
		Renderer:  surface,
		Scheduler: newHostScheduler(a, cfg.Window.VSync),
		Log:       logger,
	}
	a.updateTitle()
	return a, nil
}

func viewportOptions(cfg config.Config) viewport.Options {
	opts := viewport.DefaultOptions()
	opts.MaxPixelRatio = cfg.Render.MaxPixelRatio
	c := cfg.Controls
	opts.Damping = c.Damping
	opts.DampingFactor = c.DampingFactor
	opts.RotateSpeed = c.RotateSpeed
	opts.ZoomSpeed = c.ZoomSpeed
	opts.PanSpeed = c.PanSpeed
	opts.MinDistance = c.MinDistance
	opts.MaxDistance = c.MaxDistance
	return opts
}

// Run drives frames until ctx is done or the host closes. With a config
// path it also follows edits to the file's tunables.
func (a *App) Run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := config.Watch(ctx, configPath, a.log, a.Reload); err != nil {
				a.log.Warn("config watch disabled", "err", err)
			}
		}()
	}

	err := a.Loop.Run(ctx)
	cancel()
	wg.Wait()
	if hs, ok := a.Loop.Scheduler.(*hostScheduler); ok {
		hs.stop()
	}
	return err
}

// Close waits for texture decodes still in flight, so no worker writes
// into a handle after shutdown begins. It gives up when ctx is done.
func (a *App) Close(ctx context.Context) error {
	if err := a.Textures.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for textures: %w", err)
	}
	return nil
}

// Reload queues tunables for the next frame. Safe from any goroutine; a
// newer reload replaces one not yet applied.
func (a *App) Reload(t config.Tunables) {
	a.reloadMu.Lock()
	a.reload = &t
	a.reloadMu.Unlock()
}

func (a *App) takeReload() (config.Tunables, bool) {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()
	if a.reload == nil {
		return config.Tunables{}, false
	}
	t := *a.reload
	a.reload = nil
	return t, true
}

// ApplyTunables pushes the set fields through the panel, so values are
// clamped and snapped like keyboard edits.
func (a *App) ApplyTunables(t config.Tunables) {
	for label, v := range t.Values() {
		if err := a.Panel.SetByLabel(label, v); err != nil {
			a.log.Warn("tunable ignored", "label", label, "err", err)
		}
	}
}

func (a *App) OnResize(width, height int, pixelRatio float64) {
	a.Viewport.OnResize(width, height, pixelRatio)
}

func (a *App) OnCursor(x, y float64) {
	a.Input.CursorMoved(x, y)
}

func (a *App) OnMouseButton(button int, pressed bool) {
	a.Input.MouseButton(button, pressed)
}

func (a *App) OnScroll(xoff, yoff float64) {
	a.Input.Scroll(xoff, yoff)
}

func (a *App) OnKey(key int, shift bool) {
	if a.Input.Key(key, shift) {
		a.updateTitle()
	}
}

// Title is the window title last set: the configured title and the
// selected panel binding.
func (a *App) Title() string {
	return a.title
}

func (a *App) updateTitle() {
	title := a.cfg.Window.Title
	if status := a.Panel.Status(); status != "" {
		title += "  " + status
	}
	if title != a.title {
		a.title = title
		a.host.SetTitle(title)
	}
}

// unpacedInterval paces frames when the swap does not wait for vsync.
const unpacedInterval = time.Second / 60

// hostScheduler presents the frame and runs host events on the loop
// goroutine. With vsync the swap waits for the next display refresh;
// without it a ticker sets the pace.
type hostScheduler struct {
	app  *App
	pace *frameloop.TickerScheduler
}

func newHostScheduler(a *App, vsync bool) *hostScheduler {
	s := &hostScheduler{app: a}
	if !vsync {
		s.pace = frameloop.NewTickerScheduler(unpacedInterval)
	}
	return s
}

func (s *hostScheduler) stop() {
	if s.pace != nil {
		s.pace.Stop()
	}
}

func (s *hostScheduler) NextFrame(ctx context.Context) error {
	a := s.app
	a.host.SwapBuffers()
	a.host.PollEvents()
	if t, ok := a.takeReload(); ok {
		a.ApplyTunables(t)
		a.updateTitle()
	}
	if a.host.ShouldClose() {
		return frameloop.ErrClosed
	}
	if s.pace != nil {
		return s.pace.NextFrame(ctx)
	}
	return ctx.Err()
}

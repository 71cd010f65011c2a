// Package frameloop drives the per-frame cycle: advance the controls,
// render, then wait for the host to schedule the next frame.
package frameloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"haunted-house/scene"
)

// ErrClosed is returned by a Scheduler when the host has shut down, for
// example because its window was closed.
var ErrClosed = errors.New("host closed")

type Ticker interface {
	Tick()
}

type Renderer interface {
	Render(sc *scene.Scene, cam *scene.Camera) error
}

// Scheduler blocks until the host is ready for the next frame. Host events
// are dispatched from inside NextFrame, on the loop goroutine.
type Scheduler interface {
	NextFrame(ctx context.Context) error
}

// StatsReporter is implemented by renderers that count what they drew in
// the last frame.
type StatsReporter interface {
	DrawStats() (objects, triangles int)
}

const defaultStatsEvery = 300

type Loop struct {
	Scene     *scene.Scene
	Camera    *scene.Camera
	Controls  Ticker
	Renderer  Renderer
	Scheduler Scheduler
	Log       *slog.Logger

	// StatsEvery is how many frames pass between draw stat log lines.
	// Zero means 300.
	StatsEvery uint64

	frames uint64
}

// Step runs one tick and one render.
func (l *Loop) Step() error {
	if l.Controls != nil {
		l.Controls.Tick()
	}
	if err := l.Renderer.Render(l.Scene, l.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", l.frames, err)
	}
	l.frames++
	l.reportStats()
	return nil
}

func (l *Loop) reportStats() {
	sr, ok := l.Renderer.(StatsReporter)
	if !ok {
		return
	}
	every := l.StatsEvery
	if every == 0 {
		every = defaultStatsEvery
	}
	if l.frames%every != 0 {
		return
	}
	objects, triangles := sr.DrawStats()
	l.logger().Debug("draw stats", "frame", l.frames, "objects", objects, "triangles", triangles)
}

func (l *Loop) logger() *slog.Logger {
	if l.Log == nil {
		return slog.Default()
	}
	return l.Log
}

// Run repeats Step and NextFrame until ctx is done or the host closes,
// which both end the loop cleanly. Any other failure is returned.
func (l *Loop) Run(ctx context.Context) error {
	log := l.logger()
	start := time.Now()
	log.Info("frame loop started")
	defer func() {
		log.Info("frame loop stopped", "frames", l.frames, "elapsed", time.Since(start).Round(time.Millisecond))
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.Step(); err != nil {
			return err
		}
		if err := l.Scheduler.NextFrame(ctx); err != nil {
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("schedule frame: %w", err)
		}
	}
}

// Frames is the number of frames rendered so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// TickerScheduler paces frames with a time.Ticker. It serves hosts that
// have no display refresh to wait on.
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{ticker: time.NewTicker(interval)}
}

func (s *TickerScheduler) NextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ticker.C:
		return nil
	}
}

func (s *TickerScheduler) Stop() {
	s.ticker.Stop()
}

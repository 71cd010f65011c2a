// Package assets loads textures off the render goroutine. Every Load
// returns at once with a pending handle that a worker settles later.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"haunted-house/scene"
)

var ErrNotImage = errors.New("not an image")

const (
	DefaultWorkers = 4
	queueSize      = 64
	idleTimeout    = 2 * time.Second
)

// Loader decodes textures from a filesystem on a worker pool and caches the
// handles by path.
type Loader struct {
	fsys fs.FS
	log  *slog.Logger
	pool worker.DynamicWorkerPool

	mu     sync.Mutex
	cache  map[string]*scene.Texture
	nextID int
	wg     sync.WaitGroup
}

func NewLoader(fsys fs.FS, workers int, logger *slog.Logger) *Loader {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fsys:  fsys,
		log:   logger,
		pool:  worker.NewDynamicWorkerPool(workers, queueSize, idleTimeout),
		cache: make(map[string]*scene.Texture),
	}
}

// Load returns the texture for path, queueing the decode on first use.
// Failures are logged and leave the handle in the failed state.
func (l *Loader) Load(path string) *scene.Texture {
	l.mu.Lock()
	if tex, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return tex
	}
	tex := scene.NewTexture(path)
	l.cache[path] = tex
	id := l.nextID
	l.nextID++
	l.wg.Add(1)
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.wg.Done()
			err := l.fill(tex, path)
			if err != nil {
				l.log.Error("texture load failed", "path", path, "err", err)
				tex.Fail(err)
			}
			return nil, err
		},
	})
	return tex
}

func (l *Loader) fill(tex *scene.Texture, path string) error {
	start := time.Now()
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return fmt.Errorf("read texture %q: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return fmt.Errorf("decode texture %q: %w", path, err)
	}
	b := img.Bounds()
	tex.Resolve(b.Dx(), b.Dy(), img.Pix)
	l.log.Debug("texture loaded", "path", path, "width", b.Dx(), "height", b.Dy(), "took", time.Since(start))
	return nil
}

// Wait blocks until every queued load has settled or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Decode sniffs and decodes an encoded image into RGBA rows ordered bottom
// to top, the layout glTexImage2D expects.
func Decode(data []byte) (*image.RGBA, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return transform.FlipV(img), nil
}

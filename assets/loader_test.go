package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haunted-house/scene"
)

// twoRowPNG is 1x2: red on top, blue below.
func twoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fs.FS {
	return fstest.MapFS{
		"textures/door/color.png": {Data: twoRowPNG(t)},
		"textures/notes.txt":      {Data: []byte("the door creaks")},
	}
}

func waitSettled(t *testing.T, l *Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
}

func TestLoadResolvesFlipped(t *testing.T) {
	l := NewLoader(testFS(t), 2, nil)
	tex := l.Load("textures/door/color.png")
	waitSettled(t, l)

	require.Equal(t, scene.TextureReady, tex.State())
	w, h := tex.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, h)
	// Bottom row first.
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, tex.Pixels())
}

func TestLoadCachesByPath(t *testing.T) {
	l := NewLoader(testFS(t), 1, nil)
	a := l.Load("textures/door/color.png")
	b := l.Load("textures/door/color.png")
	assert.Same(t, a, b)
	waitSettled(t, l)
}

func TestLoadFailures(t *testing.T) {
	l := NewLoader(testFS(t), 2, nil)
	missing := l.Load("textures/door/nope.png")
	text := l.Load("textures/notes.txt")
	waitSettled(t, l)

	assert.Equal(t, scene.TextureFailed, missing.State())
	assert.ErrorIs(t, missing.Err(), fs.ErrNotExist)
	assert.Equal(t, scene.TextureFailed, text.State())
	assert.ErrorIs(t, text.Err(), ErrNotImage)
}

func TestWaitHonorsContext(t *testing.T) {
	l := NewLoader(testFS(t), 1, nil)
	l.wg.Add(1)
	defer l.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.Canceled)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrNotImage)

	img, err := Decode(twoRowPNG(t))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
}

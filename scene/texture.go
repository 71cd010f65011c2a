package scene

import (
	"sync/atomic"
)

type TextureState int32

const (
	TexturePending TextureState = iota
	TextureReady
	TextureFailed
)

func (s TextureState) String() string {
	switch s {
	case TexturePending:
		return "pending"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	}
	return "unknown"
}

// Texture is a handle to image data that may still be loading. A loader
// goroutine settles it with Resolve or Fail; only the first call counts.
// Readers must check Ready before touching the pixels.
type Texture struct {
	Name string
	// GLID is the OpenGL texture object, set by the renderer on upload.
	GLID uint32

	width, height int
	pixels        []byte // RGBA8, bottom row first
	err           error
	settled       atomic.Bool
	state         atomic.Int32
}

func NewTexture(name string) *Texture {
	return &Texture{Name: name}
}

// NewSolidTexture returns a ready 1x1 texture of the given RGBA bytes.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	t := NewTexture(name)
	t.Resolve(1, 1, []byte{r, g, b, a})
	return t
}

func (t *Texture) State() TextureState {
	return TextureState(t.state.Load())
}

func (t *Texture) Ready() bool {
	return t.State() == TextureReady
}

// Resolve publishes decoded pixels and marks the texture ready.
func (t *Texture) Resolve(width, height int, pixels []byte) {
	if !t.settled.CompareAndSwap(false, true) {
		return
	}
	t.width, t.height, t.pixels = width, height, pixels
	t.state.Store(int32(TextureReady))
}

// Fail records why loading stopped. The texture then stays unusable.
func (t *Texture) Fail(err error) {
	if !t.settled.CompareAndSwap(false, true) {
		return
	}
	t.err = err
	t.state.Store(int32(TextureFailed))
}

// Size is valid once the texture is ready.
func (t *Texture) Size() (int, int) {
	if !t.Ready() {
		return 0, 0
	}
	return t.width, t.height
}

// Pixels returns nil until the texture is ready.
func (t *Texture) Pixels() []byte {
	if !t.Ready() {
		return nil
	}
	return t.pixels
}

func (t *Texture) Err() error {
	if t.State() != TextureFailed {
		return nil
	}
	return t.err
}

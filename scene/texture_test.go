package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextureLifecycle(t *testing.T) {
	tex := NewTexture("door/color.jpg")
	assert.Equal(t, TexturePending, tex.State())
	assert.Nil(t, tex.Pixels())
	w, h := tex.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	tex.Resolve(2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	assert.True(t, tex.Ready())
	assert.Len(t, tex.Pixels(), 8)

	// Settled textures ignore later calls.
	tex.Fail(errors.New("late"))
	assert.True(t, tex.Ready())
	assert.NoError(t, tex.Err())
}

func TestTextureFail(t *testing.T) {
	tex := NewTexture("missing.jpg")
	boom := errors.New("boom")
	tex.Fail(boom)
	assert.Equal(t, TextureFailed, tex.State())
	assert.ErrorIs(t, tex.Err(), boom)
	assert.Nil(t, tex.Pixels())

	tex.Resolve(1, 1, []byte{0, 0, 0, 0})
	assert.Equal(t, TextureFailed, tex.State())
}

func TestTextureConcurrentResolve(t *testing.T) {
	tex := NewTexture("race")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v byte) {
			defer wg.Done()
			tex.Resolve(1, 1, []byte{v, v, v, v})
		}(byte(i))
	}
	wg.Wait()

	px := tex.Pixels()
	assert.Len(t, px, 4)
	assert.Equal(t, px[0], px[3])
}

func TestSolidTexture(t *testing.T) {
	tex := NewSolidTexture("white", 255, 255, 255, 255)
	assert.True(t, tex.Ready())
	w, h := tex.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

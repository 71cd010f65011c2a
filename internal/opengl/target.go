package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is an off-screen color+depth framebuffer. The scene is drawn
// into it at the capped pixel density, then stretched onto the window
// framebuffer with a linear blit.
type RenderTarget struct {
	FBO      uint32
	ColorRBO uint32
	DepthRBO uint32
	Width    int32
	Height   int32
}

func NewRenderTarget(width, height int) (*RenderTarget, error) {
	rt := &RenderTarget{}
	if err := rt.alloc(width, height); err != nil {
		rt.Destroy()
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTarget) alloc(width, height int) error {
	rt.Width = int32(max(width, 1))
	rt.Height = int32(max(height, 1))

	gl.GenRenderbuffers(1, &rt.ColorRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.ColorRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, rt.Width, rt.Height)

	gl.GenRenderbuffers(1, &rt.DepthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.DepthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, rt.Width, rt.Height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rt.ColorRBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.DepthRBO)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("render target %dx%d incomplete (0x%X)", rt.Width, rt.Height, status)
	}
	return nil
}

func (rt *RenderTarget) free() {
	if rt.FBO != 0 {
		gl.DeleteFramebuffers(1, &rt.FBO)
		rt.FBO = 0
	}
	if rt.ColorRBO != 0 {
		gl.DeleteRenderbuffers(1, &rt.ColorRBO)
		rt.ColorRBO = 0
	}
	if rt.DepthRBO != 0 {
		gl.DeleteRenderbuffers(1, &rt.DepthRBO)
		rt.DepthRBO = 0
	}
}

// Resize reallocates the attachments when the size changed.
func (rt *RenderTarget) Resize(width, height int) error {
	if int32(width) == rt.Width && int32(height) == rt.Height {
		return nil
	}
	rt.free()
	return rt.alloc(width, height)
}

// Bind makes the target current and sets the viewport to cover it.
func (rt *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.Viewport(0, 0, rt.Width, rt.Height)
}

// BlitToScreen copies the color attachment onto the default framebuffer of
// the given size.
func (rt *RenderTarget) BlitToScreen(screenW, screenH int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.FBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, rt.Width, rt.Height,
		0, 0, int32(screenW), int32(screenH),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (rt *RenderTarget) Destroy() {
	rt.free()
}

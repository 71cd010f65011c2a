package renderer

import (
	"fmt"
	"log/slog"

	"haunted-house/internal/opengl"
	"haunted-house/scene"
	"haunted-house/viewport"
)

// FramebufferSizer reports the size of the default framebuffer in pixels.
type FramebufferSizer interface {
	FramebufferSize() (int, int)
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
// It draws into an off-screen target sized by the logical output size and
// the pixel ratio, then scales that onto the window framebuffer.
type RenderEngine struct {
	gl     *opengl.Renderer
	target *opengl.RenderTarget
	screen FramebufferSizer
	log    *slog.Logger

	width, height int
	pixelRatio    float64

	uploaded []*scene.Texture
	failed   map[*scene.Texture]struct{}

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastTriangles int
}

// NewRenderEngine needs a current GL context on the calling goroutine.
func NewRenderEngine(screen FramebufferSizer, logger *slog.Logger) (*RenderEngine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	glRenderer, err := opengl.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	w, h := screen.FramebufferSize()
	target, err := opengl.NewRenderTarget(w, h)
	if err != nil {
		glRenderer.Destroy()
		return nil, fmt.Errorf("render target: %w", err)
	}

	logger.Info("render engine initialized", "backend", "opengl")
	return &RenderEngine{
		gl:         glRenderer,
		target:     target,
		screen:     screen,
		log:        logger,
		width:      w,
		height:     h,
		pixelRatio: 1,
		failed:     make(map[*scene.Texture]struct{}),
	}, nil
}

// SetSize sets the logical output size.
func (re *RenderEngine) SetSize(width, height int) {
	re.width, re.height = width, height
}

// SetPixelRatio sets how many target pixels back one logical pixel.
func (re *RenderEngine) SetPixelRatio(ratio float64) {
	re.pixelRatio = ratio
}

// Render draws one frame of sc as seen from cam.
func (re *RenderEngine) Render(sc *scene.Scene, cam *scene.Camera) error {
	if sc == nil || cam == nil {
		return fmt.Errorf("no scene or camera")
	}

	w, h := viewport.DrawingBufferSize(re.width, re.height, re.pixelRatio)
	if err := re.target.Resize(w, h); err != nil {
		return fmt.Errorf("resize render target: %w", err)
	}

	items := sc.RenderList(cam)
	for _, it := range items {
		re.uploadTextures(it.Node.Material)
	}

	re.target.Bind()
	re.gl.BeginFrame(opengl.FrameState{
		Background: sc.Background,
		Lights:     sc.CollectLights(),
		Fog:        sc.Fog,
		CameraPos:  cam.Position,
	})

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	viewProj := view.Mul(proj)

	re.lastObjects, re.lastTriangles = 0, 0
	for _, it := range items {
		n := it.Node
		mvp := it.World.Mul(viewProj)
		modelView := it.World.Mul(view)
		re.gl.DrawMesh(n.Geometry, n.Material, mvp, it.World, modelView)
		re.lastObjects++
		re.lastTriangles += n.Geometry.TriangleCount()
	}

	sw, sh := re.screen.FramebufferSize()
	re.target.BlitToScreen(sw, sh)
	return nil
}

// uploadTextures pushes newly decoded textures to the GPU. Textures still
// pending are retried next frame; failed ones stay unbound.
func (re *RenderEngine) uploadTextures(mat *scene.Material) {
	for _, tex := range mat.Textures() {
		if tex.GLID != 0 {
			continue
		}
		switch tex.State() {
		case scene.TextureReady:
			if err := opengl.UploadTexture(tex); err != nil {
				re.markFailed(tex, err)
				continue
			}
			re.uploaded = append(re.uploaded, tex)
		case scene.TextureFailed:
			re.markFailed(tex, tex.Err())
		}
	}
}

func (re *RenderEngine) markFailed(tex *scene.Texture, err error) {
	if _, seen := re.failed[tex]; seen {
		return
	}
	re.failed[tex] = struct{}{}
	re.log.Warn("texture left unbound", "texture", tex.Name, "err", err)
}

// DrawStats returns the object and triangle counts of the last frame.
func (re *RenderEngine) DrawStats() (objects, triangles int) {
	return re.lastObjects, re.lastTriangles
}

// Destroy frees the render target, every uploaded texture and the
// backend's meshes and program.
func (re *RenderEngine) Destroy() {
	for _, tex := range re.uploaded {
		opengl.DeleteTexture(tex)
	}
	re.uploaded = nil
	re.target.Destroy()
	re.gl.Destroy()
}

// Package viewport owns the camera, its orbit controls and the output
// dimensions, and keeps them consistent across resizes.
package viewport

import (
	stdmath "math"

	"haunted-house/math"
	"haunted-house/scene"
)

// Surface is the render target whose size the controller drives.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

type Options struct {
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
	Position math.Vec3
	Target   math.Vec3

	// MaxPixelRatio caps the device pixel ratio handed to the surface.
	MaxPixelRatio float64

	Damping       bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32
}

func DefaultOptions() Options {
	return Options{
		FOV:           75,
		Near:          0.1,
		Far:           100,
		Position:      math.NewVec3(4, 2, 5),
		Target:        math.Vec3Zero,
		MaxPixelRatio: 2,
		Damping:       true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0.5,
		MaxDistance:   50,
	}
}

type Controller struct {
	camera   *scene.Camera
	controls *OrbitControls
	surface  Surface

	width, height int
	pixelRatio    float64
	maxPixelRatio float64
}

// NewController sets up the camera for an initial output of width x height
// logical pixels at device pixel ratio dpr.
func NewController(surface Surface, width, height int, dpr float64, opts Options) *Controller {
	cam := scene.NewPerspectiveCamera(opts.FOV, 1, opts.Near, opts.Far)
	cam.Position = opts.Position
	cam.LookAt(opts.Target)

	controls := NewOrbitControls(cam)
	controls.EnableDamping = opts.Damping
	controls.DampingFactor = opts.DampingFactor
	controls.RotateSpeed = opts.RotateSpeed
	controls.ZoomSpeed = opts.ZoomSpeed
	controls.PanSpeed = opts.PanSpeed
	controls.MinDistance = opts.MinDistance
	controls.MaxDistance = opts.MaxDistance

	maxRatio := opts.MaxPixelRatio
	if maxRatio <= 0 {
		maxRatio = 2
	}
	c := &Controller{
		camera:        cam,
		controls:      controls,
		surface:       surface,
		maxPixelRatio: maxRatio,
	}
	c.OnResize(width, height, dpr)
	return c
}

// OnResize adopts new output dimensions: camera aspect and projection
// first, then the surface size and the capped pixel ratio. A zero-sized
// output, as reported for a minimised window, is ignored.
func (c *Controller) OnResize(width, height int, dpr float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.camera.Aspect = float32(width) / float32(height)
	c.camera.UpdateProjectionMatrix()

	if stdmath.IsNaN(dpr) || dpr <= 0 {
		dpr = 1
	}
	c.pixelRatio = min(dpr, c.maxPixelRatio)
	if c.surface != nil {
		c.surface.SetSize(width, height)
		c.surface.SetPixelRatio(c.pixelRatio)
	}
}

// Tick advances the orbit controls by one frame.
func (c *Controller) Tick() {
	c.controls.Update()
}

func (c *Controller) Rotate(dx, dy float64) {
	c.controls.Rotate(float32(dx), float32(dy), c.height)
}

func (c *Controller) Pan(dx, dy float64) {
	c.controls.Pan(float32(dx), float32(dy), c.height)
}

func (c *Controller) Dolly(steps float64) {
	c.controls.Dolly(float32(steps))
}

func (c *Controller) Camera() *scene.Camera {
	return c.camera
}

func (c *Controller) Controls() *OrbitControls {
	return c.controls
}

func (c *Controller) Size() (int, int) {
	return c.width, c.height
}

func (c *Controller) PixelRatio() float64 {
	return c.pixelRatio
}

// DrawingBufferSize is the pixel size of the buffer backing a surface of
// width x height logical pixels at the given ratio. Never below 1x1.
func DrawingBufferSize(width, height int, ratio float64) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	w := int(stdmath.Round(float64(width) * ratio))
	h := int(stdmath.Round(float64(height) * ratio))
	return max(w, 1), max(h, 1)
}

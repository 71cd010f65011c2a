package scene

import (
	"github.com/chewxy/math32"

	"haunted-house/math"
)

// Camera is a perspective camera looking from Position at Target.
// Projection changes only take effect after UpdateProjectionMatrix.
type Camera struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     math.Vec3Up,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) UpdateProjectionMatrix() {
	c.projection = math.Mat4Perspective(c.FOV*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
}

// ViewDistance is the camera space depth of a world point, the distance
// fog is measured with.
func (c *Camera) ViewDistance(p math.Vec3) float32 {
	return -c.ViewMatrix().MulVec3(p).Z
}

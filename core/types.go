package core

import (
	"haunted-house/math"
)

// Vertex is the interleaved layout shared by every geometry and uploaded
// as-is to the GPU. UV2 is the second texture coordinate set, read by the
// ambient occlusion channel.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	UV        math.Vec2
	UV2       math.Vec2
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// Transform holds a node's local placement. Rotation is in radians, applied
// in XYZ order.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.Vec3Zero,
		Scale:    math.Vec3One,
	}
}

func (t Transform) Matrix() math.Mat4 {
	return math.Mat4Compose(t.Position, t.Rotation, t.Scale)
}

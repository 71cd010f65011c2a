package scene

import "errors"

var (
	// ErrInvalidHierarchy is returned when an attach would make a node its
	// own ancestor.
	ErrInvalidHierarchy = errors.New("invalid scene hierarchy")

	// ErrMissingUV2 is returned when a material samples an ambient occlusion
	// map but the geometry carries no second UV set.
	ErrMissingUV2 = errors.New("ambient occlusion map requires a uv2 channel")

	// ErrIncompleteMesh is returned when a mesh node is built without a
	// geometry or without a material.
	ErrIncompleteMesh = errors.New("mesh needs both geometry and material")
)

package scene

import "haunted-house/core"

type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Material is a metalness/roughness surface description. Texture channels
// are optional; a channel whose texture is not Ready is treated as unset.
// Materials may be shared between mesh nodes.
type Material struct {
	Name  string
	Color core.Color // multiplied with Map when set

	Map             *Texture // base color, sRGB
	AlphaMap        *Texture // green channel scales opacity; needs Transparent
	AOMap           *Texture // red channel, sampled with the uv2 channel
	DisplacementMap *Texture // red channel offsets vertices along the normal
	NormalMap       *Texture // tangent space
	MetalnessMap    *Texture // blue channel scales Metalness
	RoughnessMap    *Texture // green channel scales Roughness

	Metalness         float32 // 0 = dielectric, 1 = metal
	Roughness         float32 // 0 = mirror, 1 = fully diffuse
	AOMapIntensity    float32
	DisplacementScale float32
	DisplacementBias  float32
	NormalScale       float32

	Transparent bool // alpha-blended, drawn after opaque meshes
	Side        Side
}

// NewStandardMaterial returns a fully rough dielectric of the given color.
func NewStandardMaterial(name string, color core.Color) *Material {
	return &Material{
		Name:              name,
		Color:             color,
		Metalness:         0,
		Roughness:         1,
		AOMapIntensity:    1,
		DisplacementScale: 1,
		NormalScale:       1,
	}
}

// Textures returns the bound texture channels in a fixed order.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.AlphaMap, m.AOMap, m.DisplacementMap, m.NormalMap, m.MetalnessMap, m.RoughnessMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

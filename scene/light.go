package scene

import (
	"github.com/chewxy/math32"

	"haunted-house/core"
	"haunted-house/math"
)

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is carried by a KindLight node; the node's world position is the
// light position.
type Light struct {
	Kind      LightKind
	Color     core.Color
	Intensity float32
	// Distance is the point light cutoff range. Zero means unbounded.
	Distance float32
	// Decay is the point light falloff exponent.
	Decay float32
	// Target is what directional and point lights aim at. Nil aims at the
	// world origin.
	Target *Node
}

func newLightNode(name string, l *Light) *Node {
	n := newNode(name, KindLight)
	n.Light = l
	return n
}

func NewAmbientLight(name string, color core.Color, intensity float32) *Node {
	return newLightNode(name, &Light{Kind: LightAmbient, Color: color, Intensity: intensity})
}

func NewDirectionalLight(name string, color core.Color, intensity float32) *Node {
	return newLightNode(name, &Light{Kind: LightDirectional, Color: color, Intensity: intensity})
}

func NewPointLight(name string, color core.Color, intensity, distance float32) *Node {
	return newLightNode(name, &Light{Kind: LightPoint, Color: color, Intensity: intensity, Distance: distance, Decay: 2})
}

// Radiance is the light color scaled by its intensity.
func (l *Light) Radiance() core.Color {
	return core.Color{R: l.Color.R * l.Intensity, G: l.Color.G * l.Intensity, B: l.Color.B * l.Intensity, A: 1}
}

// Attenuation returns the point light falloff at distance d: inverse power
// decay, windowed to reach zero at Distance when a cutoff is set.
func (l *Light) Attenuation(d float32) float32 {
	falloff := 1 / math32.Max(math32.Pow(d, l.Decay), 0.01)
	if l.Distance > 0 {
		r := d / l.Distance
		w := 1 - r*r*r*r
		if w < 0 {
			w = 0
		} else if w > 1 {
			w = 1
		}
		falloff *= w * w
	}
	return falloff
}

// AimPoint is the world position the light on n points at.
func (n *Node) AimPoint() math.Vec3 {
	if n.Light != nil && n.Light.Target != nil {
		return n.Light.Target.WorldPosition()
	}
	return math.Vec3Zero
}

// LightDirection is the unit direction light travels from n toward its aim
// point.
func (n *Node) LightDirection() math.Vec3 {
	return n.AimPoint().Sub(n.WorldPosition()).Normalize()
}

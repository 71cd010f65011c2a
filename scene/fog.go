package scene

import "haunted-house/core"

// Fog blends fragments toward Color between Near and Far view distance.
type Fog struct {
	Color core.Color
	Near  float32
	Far   float32
}

func NewFog(color core.Color, near, far float32) *Fog {
	return &Fog{Color: color, Near: near, Far: far}
}

// Factor is 0 at or before Near, 1 at or beyond Far, with a smooth Hermite
// ramp between.
func (f *Fog) Factor(distance float32) float32 {
	if distance <= f.Near {
		return 0
	}
	if distance >= f.Far {
		return 1
	}
	t := (distance - f.Near) / (f.Far - f.Near)
	return t * t * (3 - 2*t)
}

// Apply returns c as seen through the fog at distance.
func (f *Fog) Apply(c core.Color, distance float32) core.Color {
	return c.Lerp(f.Color, f.Factor(distance))
}

package scene

import (
	"github.com/chewxy/math32"

	"haunted-house/math"
)

// ComputeTangents fills the per-vertex tangent frame used by normal mapping.
// Triangles with a degenerate UV area contribute nothing; vertices left
// without a tangent get an arbitrary one perpendicular to the normal.
func ComputeTangents(g *Geometry) {
	for i := range g.Vertices {
		g.Vertices[i].Tangent = math.Vec3{}
		g.Vertices[i].Bitangent = math.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0 := g.Vertices[i0]
		v1 := g.Vertices[i1]
		v2 := g.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)

		du1 := v1.UV.X - v0.UV.X
		dv1 := v1.UV.Y - v0.UV.Y
		du2 := v2.UV.X - v0.UV.X
		dv2 := v2.UV.Y - v0.UV.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1.0 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

		for _, idx := range [3]uint32{i0, i1, i2} {
			g.Vertices[idx].Tangent = g.Vertices[idx].Tangent.Add(t)
			g.Vertices[idx].Bitangent = g.Vertices[idx].Bitangent.Add(b)
		}
	}

	for i := 0; i+2 < len(g.Indices); i += 3 {
		accum(g.Indices[i], g.Indices[i+1], g.Indices[i+2])
	}

	// Gram-Schmidt against the normal.
	for i := range g.Vertices {
		n := g.Vertices[i].Normal
		t := g.Vertices[i].Tangent
		b := g.Vertices[i].Bitangent

		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			if math32.Abs(n.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(n.Mul(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Mul(n.Y))
			}
		}
		g.Vertices[i].Tangent = t.Normalize()

		if b.LengthSqr() < 1e-8 {
			b = n.Cross(g.Vertices[i].Tangent)
		}
		g.Vertices[i].Bitangent = b.Normalize()
	}
}

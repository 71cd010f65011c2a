package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"haunted-house/core"
	"haunted-house/math"
)

type GeometryKind int

const (
	GeometryBox GeometryKind = iota
	GeometryCone
	GeometrySphere
	GeometryPlane
)

func (k GeometryKind) String() string {
	switch k {
	case GeometryBox:
		return "box"
	case GeometryCone:
		return "cone"
	case GeometrySphere:
		return "sphere"
	case GeometryPlane:
		return "plane"
	}
	return fmt.Sprintf("GeometryKind(%d)", int(k))
}

// Geometry is an indexed triangle list. It may be shared by any number of
// mesh nodes and is treated as read-only once a node references it.
type Geometry struct {
	Kind     GeometryKind
	Vertices []core.Vertex
	Indices  []uint32
	// HasUV2 is set once the second UV channel has been populated.
	HasUV2 bool
}

// SetUV2FromUV copies every vertex's UV into its UV2 slot.
func (g *Geometry) SetUV2FromUV() {
	for i := range g.Vertices {
		g.Vertices[i].UV2 = g.Vertices[i].UV
	}
	g.HasUV2 = true
}

// UVs returns the first UV channel flattened as u0, v0, u1, v1, ...
func (g *Geometry) UVs() []float32 {
	out := make([]float32, 0, 2*len(g.Vertices))
	for _, v := range g.Vertices {
		out = append(out, v.UV.X, v.UV.Y)
	}
	return out
}

// UV2s returns the second UV channel flattened, or nil when it is absent.
func (g *Geometry) UV2s() []float32 {
	if !g.HasUV2 {
		return nil
	}
	out := make([]float32, 0, 2*len(g.Vertices))
	for _, v := range g.Vertices {
		out = append(out, v.UV2.X, v.UV2.Y)
	}
	return out
}

func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// NewBox builds an axis-aligned box centered on the origin. Each face has
// its own vertices so normals stay flat.
func NewBox(width, height, depth float32) *Geometry {
	g := &Geometry{Kind: GeometryBox}
	const x, y, z = 0, 1, 2
	g.boxFace(z, y, x, -1, -1, depth, height, width)
	g.boxFace(z, y, x, 1, -1, depth, height, -width)
	g.boxFace(x, z, y, 1, 1, width, depth, height)
	g.boxFace(x, z, y, 1, -1, width, depth, -height)
	g.boxFace(x, y, z, 1, -1, width, height, depth)
	g.boxFace(x, y, z, -1, -1, width, height, -depth)
	ComputeTangents(g)
	return g
}

// boxFace appends one quad of a box. u, v and w name the axes spanned by
// the face and its normal; the sign of depth picks the side.
func (g *Geometry) boxFace(u, v, w int, udir, vdir, width, height, depth float32) {
	start := uint32(len(g.Vertices))
	normal := [3]float32{}
	if depth > 0 {
		normal[w] = 1
	} else {
		normal[w] = -1
	}

	for iy := 0; iy <= 1; iy++ {
		py := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			px := float32(ix)*width - width/2
			var p [3]float32
			p[u] = px * udir
			p[v] = py * vdir
			p[w] = depth / 2
			g.Vertices = append(g.Vertices, core.Vertex{
				Position: math.NewVec3(p[0], p[1], p[2]),
				Normal:   math.NewVec3(normal[0], normal[1], normal[2]),
				UV:       math.NewVec2(float32(ix), 1-float32(iy)),
			})
		}
	}
	a, b, c, d := start, start+2, start+3, start+1
	g.Indices = append(g.Indices, a, b, d, b, c, d)
}

// NewCone builds a cone with its apex up, centered on the origin. The first
// rim vertex lies on +Z, so four segments give a pyramid whose edges sit on
// the axes.
func NewCone(radius, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Kind: GeometryCone}
	half := height / 2
	slope := radius / height

	// Side: an apex row and a rim row, each with a seam duplicate.
	for row := 0; row <= 1; row++ {
		r := float32(row) * radius
		py := half - float32(row)*height
		for seg := 0; seg <= segments; seg++ {
			u := float32(seg) / float32(segments)
			sin, cos := math32.Sincos(u * 2 * math32.Pi)
			g.Vertices = append(g.Vertices, core.Vertex{
				Position: math.NewVec3(r*sin, py, r*cos),
				Normal:   math.NewVec3(sin, slope, cos).Normalize(),
				UV:       math.NewVec2(u, 1-float32(row)),
			})
		}
	}
	stride := uint32(segments + 1)
	for seg := uint32(0); seg < uint32(segments); seg++ {
		b := stride + seg
		c := stride + seg + 1
		d := seg + 1
		g.Indices = append(g.Indices, b, c, d)
	}

	// Bottom cap: one center vertex per segment, then the rim.
	centerStart := uint32(len(g.Vertices))
	down := math.NewVec3(0, -1, 0)
	for seg := 0; seg < segments; seg++ {
		g.Vertices = append(g.Vertices, core.Vertex{
			Position: math.NewVec3(0, -half, 0),
			Normal:   down,
			UV:       math.NewVec2(0.5, 0.5),
		})
	}
	rimStart := uint32(len(g.Vertices))
	for seg := 0; seg <= segments; seg++ {
		u := float32(seg) / float32(segments)
		sin, cos := math32.Sincos(u * 2 * math32.Pi)
		g.Vertices = append(g.Vertices, core.Vertex{
			Position: math.NewVec3(radius*sin, -half, radius*cos),
			Normal:   down,
			UV:       math.NewVec2(cos*0.5+0.5, -sin*0.5+0.5),
		})
	}
	for seg := uint32(0); seg < uint32(segments); seg++ {
		i := rimStart + seg
		g.Indices = append(g.Indices, i+1, i, centerStart+seg)
	}

	ComputeTangents(g)
	return g
}

// NewSphere builds a UV sphere centered on the origin.
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{Kind: GeometrySphere}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}
		sinV, cosV := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)
			p := math.NewVec3(-radius*cosU*sinV, radius*cosV, radius*sinU*sinV)
			g.Vertices = append(g.Vertices, core.Vertex{
				Position: p,
				Normal:   p.Normalize(),
				UV:       math.NewVec2(u+uOffset, 1-v),
			})
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			row := uint32(iy) * stride
			a := row + uint32(ix) + 1
			b := row + uint32(ix)
			c := row + stride + uint32(ix)
			d := row + stride + uint32(ix) + 1
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	ComputeTangents(g)
	return g
}

// NewPlane builds a subdivided plane in the XY plane facing +Z.
func NewPlane(width, height float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	g := &Geometry{
		Kind:     GeometryPlane,
		Vertices: make([]core.Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*heightSegments*6),
	}
	segW := width / float32(widthSegments)
	segH := height / float32(heightSegments)
	front := math.NewVec3(0, 0, 1)

	for iy := 0; iy <= heightSegments; iy++ {
		py := float32(iy)*segH - height/2
		for ix := 0; ix <= widthSegments; ix++ {
			px := float32(ix)*segW - width/2
			g.Vertices = append(g.Vertices, core.Vertex{
				Position: math.NewVec3(px, -py, 0),
				Normal:   front,
				UV:       math.NewVec2(float32(ix)/float32(widthSegments), 1-float32(iy)/float32(heightSegments)),
			})
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := uint32(0); iy < uint32(heightSegments); iy++ {
		for ix := uint32(0); ix < uint32(widthSegments); ix++ {
			a := ix + stride*iy
			b := ix + stride*(iy+1)
			c := ix + 1 + stride*(iy+1)
			d := ix + 1 + stride*iy
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	ComputeTangents(g)
	return g
}

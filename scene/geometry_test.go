package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haunted-house/math"
)

func assertIndicesInRange(t *testing.T, g *Geometry) {
	t.Helper()
	require.Zero(t, len(g.Indices)%3)
	for _, i := range g.Indices {
		require.Less(t, int(i), len(g.Vertices))
	}
}

func assertUnitNormals(t *testing.T, g *Geometry) {
	t.Helper()
	for i, v := range g.Vertices {
		assert.InDelta(t, 1, v.Normal.Length(), 1e-4, "vertex %d", i)
	}
}

func TestPlane(t *testing.T) {
	g := NewPlane(2.2, 2.2, 100, 100)
	assert.Equal(t, GeometryPlane, g.Kind)
	assert.Len(t, g.Vertices, 101*101)
	assert.Equal(t, 100*100*2, g.TriangleCount())
	assertIndicesInRange(t, g)

	first := g.Vertices[0]
	assert.True(t, first.Position.ApproxEqual(math.NewVec3(-1.1, 1.1, 0), 1e-5))
	assert.Equal(t, math.NewVec2(0, 1), first.UV)
	last := g.Vertices[len(g.Vertices)-1]
	assert.True(t, last.Position.ApproxEqual(math.NewVec3(1.1, -1.1, 0), 1e-5))
	assert.Equal(t, math.NewVec2(1, 0), last.UV)
	for _, v := range g.Vertices {
		assert.Equal(t, math.Vec3Front, v.Normal)
	}
}

func TestUV2CopiesUV(t *testing.T) {
	g := NewPlane(1, 1, 3, 2)
	assert.False(t, g.HasUV2)
	assert.Nil(t, g.UV2s())

	g.SetUV2FromUV()
	require.True(t, g.HasUV2)
	assert.Equal(t, g.UVs(), g.UV2s())
}

func TestBox(t *testing.T) {
	g := NewBox(4, 4, 4)
	assert.Len(t, g.Vertices, 24)
	assert.Len(t, g.Indices, 36)
	assertIndicesInRange(t, g)
	assertUnitNormals(t, g)
	for _, v := range g.Vertices {
		assert.InDelta(t, 2, math32.Abs(v.Position.Dot(v.Normal)), 1e-6)
	}
}

func TestConeIsPyramidWithFourSegments(t *testing.T) {
	g := NewCone(3.5, 1, 4)
	assert.Len(t, g.Vertices, 19)
	assert.Equal(t, 8, g.TriangleCount())
	assertIndicesInRange(t, g)
	assertUnitNormals(t, g)

	var maxY, minY float32
	for _, v := range g.Vertices {
		maxY = math32.Max(maxY, v.Position.Y)
		minY = math32.Min(minY, v.Position.Y)
	}
	assert.InDelta(t, 0.5, maxY, 1e-6)
	assert.InDelta(t, -0.5, minY, 1e-6)

	// First rim corner sits on +Z.
	rim := g.Vertices[5].Position
	assert.True(t, rim.ApproxEqual(math.NewVec3(0, -0.5, 3.5), 1e-5), "got %v", rim)
}

func TestConeSidesFaceOutward(t *testing.T) {
	g := NewCone(1, 1, 8)
	for i := 0; i < 8*3; i += 3 {
		a := g.Vertices[g.Indices[i]].Position
		b := g.Vertices[g.Indices[i+1]].Position
		c := g.Vertices[g.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		centroid.Y = 0
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d", i/3)
	}
}

func TestSphere(t *testing.T) {
	g := NewSphere(1, 16, 16)
	assert.Len(t, g.Vertices, 17*17)
	assert.Equal(t, 16*16*2-2*16, g.TriangleCount())
	assertIndicesInRange(t, g)
	assertUnitNormals(t, g)
	for _, v := range g.Vertices {
		assert.InDelta(t, 1, v.Position.Length(), 1e-5)
	}
}

func TestTangentsArePerpendicularToNormals(t *testing.T) {
	for _, g := range []*Geometry{NewBox(1, 1, 1), NewPlane(1, 1, 2, 2), NewSphere(1, 8, 6)} {
		for _, v := range g.Vertices {
			assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-4, g.Kind.String())
			assert.InDelta(t, 1, v.Tangent.Length(), 1e-4, g.Kind.String())
		}
	}
}

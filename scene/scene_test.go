package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haunted-house/core"
	"haunted-house/math"
)

func mesh(t *testing.T, name string, transparent bool) *Node {
	t.Helper()
	mat := NewStandardMaterial(name, core.ColorWhite)
	mat.Transparent = transparent
	n, err := NewMesh(name, NewBox(1, 1, 1), mat)
	require.NoError(t, err)
	return n
}

func TestRenderListOrder(t *testing.T) {
	sc := NewScene()
	near := mesh(t, "glass-near", true)
	near.SetPosition(0, 0, 5)
	far := mesh(t, "glass-far", true)
	far.SetPosition(0, 0, -5)
	wall := mesh(t, "wall", false)
	hidden := mesh(t, "hidden", false)
	hidden.Visible = false
	require.NoError(t, sc.Add(near, far, wall, hidden, NewObject("empty")))

	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.Position = math.NewVec3(0, 0, 10)

	var order []string
	for _, item := range sc.RenderList(cam) {
		order = append(order, item.Node.Name)
	}
	assert.Equal(t, []string{"wall", "glass-far", "glass-near"}, order)
}

func TestCollectLights(t *testing.T) {
	sc := NewScene()
	ambient := NewAmbientLight("ambient", core.ColorWhite, 0.25)
	moon := NewDirectionalLight("moon", core.ColorWhite, 1)
	moon.SetPosition(0, 0, 3)
	lamp := NewPointLight("lamp", core.ColorWhite, 2, 10)
	lamp.SetPosition(1, 2, 3)
	off := NewPointLight("off", core.ColorWhite, 1, 0)
	off.Visible = false
	require.NoError(t, sc.Add(ambient, moon, lamp, off))

	set := sc.CollectLights()
	assert.Equal(t, float32(0.25), set.Ambient.R)
	require.Len(t, set.Directional, 1)
	assert.True(t, set.Directional[0].Direction.ApproxEqual(math.NewVec3(0, 0, -1), 1e-6))
	require.Len(t, set.Point, 1)
	assert.Equal(t, math.NewVec3(1, 2, 3), set.Point[0].Position)
	assert.Equal(t, float32(2), set.Point[0].Radiance.G)
	assert.Equal(t, float32(10), set.Point[0].Distance)
}

func TestValidateReportsLateAOBinding(t *testing.T) {
	sc := NewScene()
	door := mesh(t, "door", false)
	require.NoError(t, sc.Add(door))
	require.NoError(t, sc.Validate())

	door.Material.AOMap = NewTexture("ao")
	err := sc.Validate()
	assert.ErrorIs(t, err, ErrMissingUV2)
	assert.Contains(t, err.Error(), "door")
}

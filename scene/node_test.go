package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haunted-house/core"
	"haunted-house/math"
)

func names(n *Node) []string {
	var out []string
	n.Traverse(func(c *Node) { out = append(out, c.Name) })
	return out
}

func TestAddOrdersChildren(t *testing.T) {
	root := NewGroup("root")
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	require.NoError(t, root.Add(a, b))
	require.NoError(t, root.Add(c))

	assert.Equal(t, []string{"root", "a", "b", "c"}, names(root))
	assert.Same(t, root, b.Parent())
}

func TestRemoveDropsSubtree(t *testing.T) {
	root := NewGroup("root")
	house := NewGroup("house")
	walls := NewObject("walls")
	door := NewObject("door")
	knob := NewObject("knob")
	require.NoError(t, door.Add(knob))
	require.NoError(t, house.Add(walls, door))
	require.NoError(t, root.Add(house, NewObject("floor")))

	assert.True(t, root.Remove(house))
	assert.Equal(t, []string{"root", "floor"}, names(root))
	assert.Nil(t, house.Parent())
	assert.Nil(t, root.Find("knob"))

	// The detached subtree is intact on its own.
	assert.Equal(t, []string{"house", "walls", "door", "knob"}, names(house))
	assert.False(t, root.Remove(house))
}

func TestAddRejectsCycles(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	require.NoError(t, a.Add(b))
	require.NoError(t, b.Add(c))

	err := c.Add(a)
	require.ErrorIs(t, err, ErrInvalidHierarchy)
	assert.ErrorIs(t, a.Add(a), ErrInvalidHierarchy)
	assert.ErrorIs(t, a.Add(nil), ErrInvalidHierarchy)

	// A failed batch attaches nothing.
	d := NewGroup("d")
	assert.ErrorIs(t, c.Add(d, a), ErrInvalidHierarchy)
	assert.Nil(t, d.Parent())
	assert.Empty(t, c.Children())
}

func TestAddMovesExistingChild(t *testing.T) {
	first := NewGroup("first")
	second := NewGroup("second")
	child := NewObject("child")
	require.NoError(t, first.Add(child))
	require.NoError(t, second.Add(child))

	assert.Empty(t, first.Children())
	assert.Equal(t, []*Node{child}, second.Children())
	assert.Same(t, second, child.Parent())
}

func TestSetTransformPartial(t *testing.T) {
	n := NewObject("n")
	n.SetPosition(1, 2, 3)
	n.SetScale(2)

	rot := math.NewVec3(0, 1, 0)
	n.SetTransform(TransformUpdate{Rotation: &rot})

	assert.Equal(t, math.NewVec3(1, 2, 3), n.Transform.Position)
	assert.Equal(t, rot, n.Transform.Rotation)
	assert.Equal(t, math.Splat(2), n.Transform.Scale)

	pos := math.NewVec3(0, 0, 0)
	n.SetTransform(TransformUpdate{Position: &pos})
	assert.Equal(t, math.Vec3Zero, n.Transform.Position)
	assert.Equal(t, rot, n.Transform.Rotation)
}

func TestWorldMatrixFollowsParents(t *testing.T) {
	parent := NewGroup("parent")
	parent.SetPosition(0, 1, 0)
	parent.SetScale(2)
	child := NewObject("child")
	child.SetPosition(1, 0, 0)
	require.NoError(t, parent.Add(child))

	assert.True(t, child.WorldPosition().ApproxEqual(math.NewVec3(2, 1, 0), 1e-6))

	// Direct field edits are picked up without any refresh call.
	parent.Transform.Position.Y = 5
	assert.True(t, child.WorldPosition().ApproxEqual(math.NewVec3(2, 5, 0), 1e-6))
}

func TestTraverseVisibleSkipsHiddenSubtrees(t *testing.T) {
	root := NewGroup("root")
	hidden := NewGroup("hidden")
	hidden.Visible = false
	require.NoError(t, hidden.Add(NewObject("inner")))
	require.NoError(t, root.Add(hidden, NewObject("shown")))

	var seen []string
	root.TraverseVisible(func(n *Node) { seen = append(seen, n.Name) })
	assert.Equal(t, []string{"root", "shown"}, seen)
}

func TestNewMeshValidation(t *testing.T) {
	geo := NewPlane(1, 1, 1, 1)
	mat := NewStandardMaterial("m", core.ColorWhite)
	mat.AOMap = NewTexture("ao")

	_, err := NewMesh("door", geo, mat)
	require.ErrorIs(t, err, ErrMissingUV2)
	assert.Contains(t, err.Error(), "door")

	geo.SetUV2FromUV()
	n, err := NewMesh("door", geo, mat)
	require.NoError(t, err)
	assert.Equal(t, KindMesh, n.Kind)

	_, err = NewMesh("empty", nil, mat)
	assert.ErrorIs(t, err, ErrIncompleteMesh)
}

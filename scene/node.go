package scene

import (
	"fmt"

	"haunted-house/core"
	"haunted-house/math"
)

type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindLight
	// KindObject is an empty positioned node, typically an aim target.
	KindObject
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is an element of the scene graph. A node has at most one parent and
// owns its children; the world matrix is derived from the parent chain on
// every call, so direct edits to Transform are always observed.
type Node struct {
	Name      string
	Kind      NodeKind
	Transform core.Transform
	Visible   bool

	Geometry *Geometry
	Material *Material
	Light    *Light

	parent   *Node
	children []*Node
}

// TransformUpdate carries the parts of a transform to overwrite. Nil fields
// are left untouched.
type TransformUpdate struct {
	Position *math.Vec3
	Rotation *math.Vec3
	Scale    *math.Vec3
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		Name:      name,
		Kind:      kind,
		Transform: core.NewTransform(),
		Visible:   true,
	}
}

func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

func NewObject(name string) *Node {
	return newNode(name, KindObject)
}

// NewMesh binds a geometry and material into a renderable node. Materials
// with an ambient occlusion map need geometry with a uv2 channel.
func NewMesh(name string, geo *Geometry, mat *Material) (*Node, error) {
	if err := checkMesh(geo, mat); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	n := newNode(name, KindMesh)
	n.Geometry = geo
	n.Material = mat
	return n, nil
}

func checkMesh(geo *Geometry, mat *Material) error {
	if geo == nil || mat == nil {
		return ErrIncompleteMesh
	}
	if mat.AOMap != nil && !geo.HasUV2 {
		return ErrMissingUV2
	}
	return nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the ordered children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches children in order. A child that already has a parent is
// moved. Nothing is attached if any child is nil, n itself or an ancestor
// of n.
func (n *Node) Add(children ...*Node) error {
	for _, child := range children {
		switch {
		case child == nil:
			return fmt.Errorf("add to %q: nil child: %w", n.Name, ErrInvalidHierarchy)
		case child == n:
			return fmt.Errorf("add %q to itself: %w", n.Name, ErrInvalidHierarchy)
		case child.IsAncestorOf(n):
			return fmt.Errorf("add %q to its descendant %q: %w", child.Name, n.Name, ErrInvalidHierarchy)
		}
	}
	for _, child := range children {
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = n
		n.children = append(n.children, child)
	}
	return nil
}

// Remove detaches child and reports whether it was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// IsAncestorOf reports whether n appears on the parent chain of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) SetTransform(u TransformUpdate) {
	if u.Position != nil {
		n.Transform.Position = *u.Position
	}
	if u.Rotation != nil {
		n.Transform.Rotation = *u.Rotation
	}
	if u.Scale != nil {
		n.Transform.Scale = *u.Scale
	}
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Transform.Position = math.NewVec3(x, y, z)
}

func (n *Node) SetRotation(x, y, z float32) {
	n.Transform.Rotation = math.NewVec3(x, y, z)
}

func (n *Node) SetScale(s float32) {
	n.Transform.Scale = math.Splat(s)
}

func (n *Node) LocalMatrix() math.Mat4 {
	return n.Transform.Matrix()
}

func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	if n.parent != nil {
		m = m.Mul(n.parent.WorldMatrix())
	}
	return m
}

func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// Traverse visits n and its descendants depth-first in child order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// TraverseVisible is like Traverse but skips hidden nodes and their subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, child := range n.children {
		child.TraverseVisible(fn)
	}
}

// Find returns the first node named name in depth-first order.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

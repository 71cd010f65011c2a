package scene

import (
	"errors"
	"fmt"
	"sort"

	"haunted-house/core"
	"haunted-house/math"
)

// Scene owns the root of the graph plus the state that is not a node.
type Scene struct {
	Root       *Node
	Fog        *Fog
	Background core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewGroup("root"),
		Background: core.ColorBlack,
	}
}

func (s *Scene) Add(nodes ...*Node) error {
	return s.Root.Add(nodes...)
}

func (s *Scene) Remove(node *Node) bool {
	return s.Root.Remove(node)
}

// Validate reports every mesh whose geometry and material do not fit
// together.
func (s *Scene) Validate() error {
	var errs []error
	s.Root.Traverse(func(n *Node) {
		if n.Kind != KindMesh {
			return
		}
		if err := checkMesh(n.Geometry, n.Material); err != nil {
			errs = append(errs, fmt.Errorf("mesh %q: %w", n.Name, err))
		}
	})
	return errors.Join(errs...)
}

// RenderItem is a visible mesh with its world matrix resolved for the frame.
type RenderItem struct {
	Node  *Node
	World math.Mat4
	Depth float32 // view space distance of the mesh origin
}

// RenderList returns the visible meshes in draw order: opaque meshes in
// graph order, then transparent ones back to front.
func (s *Scene) RenderList(cam *Camera) []RenderItem {
	var opaque, transparent []RenderItem
	s.Root.TraverseVisible(func(n *Node) {
		if n.Kind != KindMesh || n.Geometry == nil || n.Material == nil {
			return
		}
		world := n.WorldMatrix()
		item := RenderItem{Node: n, World: world, Depth: cam.ViewDistance(world.Translation())}
		if n.Material.Transparent {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	})
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].Depth > transparent[j].Depth
	})
	return append(opaque, transparent...)
}

type DirectionalLightData struct {
	Direction math.Vec3
	Radiance  core.Color
}

type PointLightData struct {
	Position math.Vec3
	Radiance core.Color
	Distance float32
	Decay    float32
}

// LightSet is the per-frame light state gathered from visible light nodes.
type LightSet struct {
	Ambient     core.Color
	Directional []DirectionalLightData
	Point       []PointLightData
}

func (s *Scene) CollectLights() LightSet {
	set := LightSet{Ambient: core.Color{A: 1}}
	s.Root.TraverseVisible(func(n *Node) {
		if n.Kind != KindLight || n.Light == nil {
			return
		}
		l := n.Light
		switch l.Kind {
		case LightAmbient:
			r := l.Radiance()
			set.Ambient.R += r.R
			set.Ambient.G += r.G
			set.Ambient.B += r.B
		case LightDirectional:
			set.Directional = append(set.Directional, DirectionalLightData{
				Direction: n.LightDirection(),
				Radiance:  l.Radiance(),
			})
		case LightPoint:
			set.Point = append(set.Point, PointLightData{
				Position: n.WorldPosition(),
				Radiance: l.Radiance(),
				Distance: l.Distance,
				Decay:    l.Decay,
			})
		}
	})
	return set
}

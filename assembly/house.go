// Package assembly builds the haunted house and its surroundings into a
// scene graph. It runs once, before the first frame.
package assembly

import (
	"fmt"

	"github.com/chewxy/math32"

	"haunted-house/core"
	"haunted-house/scene"
)

// TextureSource hands out texture handles without blocking.
type TextureSource interface {
	Load(path string) *scene.Texture
}

const doorTextureDir = "textures/door/"

// House keeps handles to the parts other components tune or inspect.
type House struct {
	Group      *scene.Node
	Walls      *scene.Node
	Roof       *scene.Node
	Door       *scene.Node
	DoorLight  *scene.Node
	DoorTarget *scene.Node
	Bushes     []*scene.Node
}

type bushPlacement struct {
	scale   float32
	x, y, z float32
}

var bushPlacements = []bushPlacement{
	{0.5, 0.8, -1, 2.2},
	{0.4, -0.8, -1, 2.2},
	{0.15, -1, -1, 2.6},
}

// BuildHouse assembles the house group. The caller attaches Group to the
// scene root.
func BuildHouse(textures TextureSource) (*House, error) {
	h := &House{Group: scene.NewGroup("house")}

	walls, err := scene.NewMesh("walls", scene.NewBox(4, 4, 4), scene.NewStandardMaterial("walls", core.MustParseColor("#ac8e82")))
	if err != nil {
		return nil, err
	}
	walls.SetPosition(0, 1, 0)
	h.Walls = walls

	roof, err := scene.NewMesh("roof", scene.NewCone(3.5, 1, 4), scene.NewStandardMaterial("roof", core.MustParseColor("#F5F5DC")))
	if err != nil {
		return nil, err
	}
	roof.SetRotation(0, math32.Pi*0.25, 0)
	roof.SetPosition(0, 3+0.5, 0)
	h.Roof = roof

	if h.Door, err = buildDoor(textures); err != nil {
		return nil, err
	}

	h.DoorLight = scene.NewPointLight("door-light", core.MustParseColor("#b4d4cf"), 1, 10)
	h.DoorLight.SetPosition(0, 3.2, 2.7)
	h.DoorTarget = scene.NewObject("door-light-target")
	h.DoorTarget.SetPosition(0, 1, 2.7)
	h.DoorLight.Light.Target = h.DoorTarget

	bushGeometry := scene.NewSphere(1, 16, 16)
	bushMaterial := scene.NewStandardMaterial("bush", core.MustParseColor("#89c854"))
	for i, p := range bushPlacements {
		bush, err := scene.NewMesh(fmt.Sprintf("bush%d", i+1), bushGeometry, bushMaterial)
		if err != nil {
			return nil, err
		}
		bush.SetScale(p.scale)
		bush.SetPosition(p.x, p.y, p.z)
		h.Bushes = append(h.Bushes, bush)
	}

	if err := h.Group.Add(walls, roof, h.Door, h.DoorLight, h.DoorTarget); err != nil {
		return nil, fmt.Errorf("assemble house: %w", err)
	}
	if err := h.Group.Add(h.Bushes...); err != nil {
		return nil, fmt.Errorf("assemble house: %w", err)
	}
	return h, nil
}

func buildDoor(textures TextureSource) (*scene.Node, error) {
	load := func(name string) *scene.Texture {
		return textures.Load(doorTextureDir + name + ".jpg")
	}

	mat := scene.NewStandardMaterial("door", core.ColorWhite)
	mat.Map = load("color")
	mat.AlphaMap = load("alpha")
	mat.Transparent = true
	mat.AOMap = load("ambientOcclusion")
	mat.DisplacementMap = load("height")
	mat.DisplacementScale = 0.1
	mat.NormalMap = load("normal")
	mat.MetalnessMap = load("metalness")
	mat.RoughnessMap = load("roughness")

	geo := scene.NewPlane(2.2, 2.2, 100, 100)
	geo.SetUV2FromUV()

	door, err := scene.NewMesh("door", geo, mat)
	if err != nil {
		return nil, err
	}
	door.SetPosition(0, 1, 2+0.01)
	return door, nil
}

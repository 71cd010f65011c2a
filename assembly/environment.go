package assembly

import (
	"fmt"

	"github.com/chewxy/math32"

	"haunted-house/core"
	"haunted-house/scene"
)

var (
	fogColor   = core.MustParseColor("#262837")
	floorColor = core.MustParseColor("#a9c388")
	moonColor  = core.MustParseColor("#b9d5ff")
)

// Environment holds the ground, the global lights and the fog.
type Environment struct {
	Floor   *scene.Node
	Ambient *scene.Node
	Moon    *scene.Node
	Fog     *scene.Fog
}

// Tunable is a numeric field exposed for live adjustment within a range.
type Tunable struct {
	Label          string
	Target         any // pointer to the struct holding Field
	Field          string
	Min, Max, Step float64
}

// BuildEnvironment attaches the floor and global lights to the scene root
// and installs the fog.
func BuildEnvironment(sc *scene.Scene) (*Environment, error) {
	floor, err := scene.NewMesh("floor", scene.NewPlane(20, 20, 1, 1), scene.NewStandardMaterial("floor", floorColor))
	if err != nil {
		return nil, err
	}
	floor.SetRotation(-math32.Pi*0.5, 0, 0)
	floor.SetPosition(0, -1, 0)

	env := &Environment{
		Floor:   floor,
		Ambient: scene.NewAmbientLight("ambient", moonColor, 0.12),
		Moon:    scene.NewDirectionalLight("moon", moonColor, 0.12),
		Fog:     scene.NewFog(fogColor, 1, 15),
	}
	env.Moon.SetPosition(4, 5, -2)

	if err := sc.Add(env.Floor, env.Ambient, env.Moon); err != nil {
		return nil, fmt.Errorf("assemble environment: %w", err)
	}
	sc.Fog = env.Fog
	sc.Background = fogColor
	return env, nil
}

// Tunables lists the light parameters offered for live adjustment.
func (e *Environment) Tunables() []Tunable {
	pos := &e.Moon.Transform.Position
	return []Tunable{
		{Label: "ambient intensity", Target: e.Ambient.Light, Field: "Intensity", Min: 0, Max: 1, Step: 0.001},
		{Label: "moon intensity", Target: e.Moon.Light, Field: "Intensity", Min: 0, Max: 1, Step: 0.001},
		{Label: "moon x", Target: pos, Field: "X", Min: -5, Max: 5, Step: 0.001},
		{Label: "moon y", Target: pos, Field: "Y", Min: -5, Max: 5, Step: 0.001},
		{Label: "moon z", Target: pos, Field: "Z", Min: -5, Max: 5, Step: 0.001},
	}
}

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haunted-house/core"
	"haunted-house/math"
)

func TestDirectionalLightAimsAtOrigin(t *testing.T) {
	moon := NewDirectionalLight("moon", core.ColorWhite, 0.5)
	moon.SetPosition(0, 5, 0)
	assert.True(t, moon.LightDirection().ApproxEqual(math.NewVec3(0, -1, 0), 1e-6))
}

func TestPointLightAimsAtTarget(t *testing.T) {
	house := NewGroup("house")
	house.SetPosition(10, 0, 0)
	lamp := NewPointLight("lamp", core.ColorWhite, 1, 10)
	lamp.SetPosition(0, 3.2, 2.7)
	target := NewObject("target")
	target.SetPosition(0, 1, 2.7)
	lamp.Light.Target = target
	require.NoError(t, house.Add(lamp, target))

	assert.True(t, lamp.AimPoint().ApproxEqual(math.NewVec3(10, 1, 2.7), 1e-5))
	assert.True(t, lamp.LightDirection().ApproxEqual(math.NewVec3(0, -1, 0), 1e-5))
	assert.Equal(t, float32(2), lamp.Light.Decay)
}

func TestPointLightAttenuation(t *testing.T) {
	l := &Light{Kind: LightPoint, Intensity: 1, Distance: 10, Decay: 2}

	assert.InDelta(t, 0.25, l.Attenuation(2)/(1-1.0/625)/(1-1.0/625), 1e-5)
	assert.Equal(t, float32(0), l.Attenuation(10))
	assert.Equal(t, float32(0), l.Attenuation(12))
	assert.Greater(t, l.Attenuation(1), l.Attenuation(3))

	unbounded := &Light{Kind: LightPoint, Decay: 2}
	assert.InDelta(t, 0.01, unbounded.Attenuation(10), 1e-6)
	// Close range is capped instead of blowing up.
	assert.InDelta(t, 100, unbounded.Attenuation(0), 1e-3)
}

func TestRadiance(t *testing.T) {
	l := &Light{Color: core.Color{R: 1, G: 0.5, B: 0, A: 1}, Intensity: 0.5}
	assert.Equal(t, core.Color{R: 0.5, G: 0.25, B: 0, A: 1}, l.Radiance())
}

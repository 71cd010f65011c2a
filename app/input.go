package app

import (
	"haunted-house/debugpanel"
)

// Mouse buttons as the host reports them, in GLFW numbering.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// KeyMap holds the host key codes the panel responds to. Shift with Next
// selects the previous binding.
type KeyMap struct {
	Next     int
	Increase int
	Decrease int
}

// Orbiter receives pointer gestures in pixels and wheel notches.
type Orbiter interface {
	Rotate(dx, dy float64)
	Pan(dx, dy float64)
	Dolly(steps float64)
}

// Input turns raw host events into orbit gestures and panel commands.
// Left drag orbits, right or middle drag pans, the wheel dollies.
type Input struct {
	orbit Orbiter
	panel *debugpanel.Panel
	keys  KeyMap

	buttons    [3]bool
	lastX      float64
	lastY      float64
	haveCursor bool
}

func NewInput(orbit Orbiter, panel *debugpanel.Panel, keys KeyMap) *Input {
	return &Input{orbit: orbit, panel: panel, keys: keys}
}

func (in *Input) MouseButton(button int, pressed bool) {
	if button < 0 || button >= len(in.buttons) {
		return
	}
	in.buttons[button] = pressed
}

func (in *Input) CursorMoved(x, y float64) {
	if !in.haveCursor {
		in.lastX, in.lastY = x, y
		in.haveCursor = true
		return
	}
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y

	switch {
	case in.buttons[MouseLeft]:
		in.orbit.Rotate(dx, dy)
	case in.buttons[MouseRight] || in.buttons[MouseMiddle]:
		in.orbit.Pan(dx, dy)
	}
}

func (in *Input) Scroll(_, yoff float64) {
	if yoff != 0 {
		in.orbit.Dolly(yoff)
	}
}

// Key handles one press or repeat. It reports whether the panel changed.
func (in *Input) Key(key int, shift bool) bool {
	if in.panel == nil {
		return false
	}
	switch key {
	case in.keys.Next:
		if shift {
			return in.panel.HandleKey(debugpanel.KeyPrev, false)
		}
		return in.panel.HandleKey(debugpanel.KeyNext, false)
	case in.keys.Increase:
		return in.panel.HandleKey(debugpanel.KeyIncrease, shift)
	case in.keys.Decrease:
		return in.panel.HandleKey(debugpanel.KeyDecrease, shift)
	}
	return false
}

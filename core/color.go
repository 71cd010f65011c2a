package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ParseColor accepts "#rrggbb", "#rgb" or a CSS color name such as "beige".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}, nil
	}
	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("parse color %q: unknown color name", s)
	}
	return Color{
		R: float32(rgba.R) / 255,
		G: float32(rgba.G) / 255,
		B: float32(rgba.B) / 255,
		A: float32(rgba.A) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on malformed input. It is
// meant for color literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends from c toward other by t in [0,1]. The endpoints are exact:
// t == 1 yields other unchanged.
func (c Color) Lerp(other Color, t float32) Color {
	s := 1 - t
	return Color{
		R: c.R*s + other.R*t,
		G: c.G*s + other.G*t,
		B: c.B*s + other.B*t,
		A: c.A*s + other.A*t,
	}
}

func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

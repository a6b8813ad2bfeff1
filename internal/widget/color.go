package widget

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-tween/internal/core"
)

// Opaque is the alpha of a fully visible widget.
const Opaque = 255

var named = map[string]core.Color{
	"black":  core.ColorBlack,
	"white":  core.ColorWhite,
	"gray":   core.ColorGray,
	"grey":   core.ColorGray,
	"red":    core.ColorRed,
	"green":  core.ColorGreen,
	"blue":   core.ColorBlue,
	"orange": core.ColorOrange,
}

// ParseColor accepts a palette name or a "#rgb"/"#rrggbb" hex string.
func ParseColor(s string) (core.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return core.Color{}, fmt.Errorf("widget: invalid color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hue returns the fully saturated color at the given angle in degrees.
// Angles wrap around the wheel.
func Hue(deg float64) core.Color {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return fromColorful(colorful.Hsv(deg, 1, 1))
}

// Blend mixes fg over bg with the given alpha, 0 being invisible and
// Opaque leaving fg unchanged.
func Blend(bg, fg core.Color, alpha uint8) core.Color {
	switch alpha {
	case Opaque:
		return fg
	case 0:
		return bg
	}
	t := float64(alpha) / Opaque
	return fromColorful(toColorful(bg).BlendRgb(toColorful(fg), t))
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.RGB(r, g, b)
}

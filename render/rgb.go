package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}

	// RgbBackground is the deep space backdrop behind every layer
	RgbBackground = RGB{8, 6, 20}
)

// clamp converts float to uint8 with saturation
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// RGBFromFloat builds a color from channels in [0, 1]
func RGBFromFloat(r, g, b float64) RGB {
	return RGB{clamp(r * 255), clamp(g * 255), clamp(b * 255)}
}

// Hex parses "#rrggbb", returns fallback on malformed input
func Hex(s string, fallback RGB) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return FromColorful(c)
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{clamp(c.R * 255), clamp(c.G * 255), clamp(c.B * 255)}
}

// Colorful converts to a go-colorful color for perceptual math
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
// Early return at the extremes saves the math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Add performs additive blend with clamping (light accumulation)
func Add(c, src RGB) RGB {
	return RGB{
		R: uint8(min(int(c.R)+int(src.R), 255)),
		G: uint8(min(int(c.G)+int(src.G), 255)),
		B: uint8(min(int(c.B)+int(src.B), 255)),
	}
}

// Max returns per-channel maximum
func Max(c, src RGB) RGB {
	return RGB{max(c.R, src.R), max(c.G, src.G), max(c.B, src.B)}
}

// Screen brightens: 1 - (1-a)(1-b) per channel
func Screen(c, src RGB) RGB {
	return RGB{
		R: 255 - uint8((int(255-c.R)*int(255-src.R))/255),
		G: 255 - uint8((int(255-c.G)*int(255-src.G))/255),
		B: 255 - uint8((int(255-c.B)*int(255-src.B))/255),
	}
}

// Scale multiplies every channel by f
func Scale(c RGB, f float64) RGB {
	return RGB{clamp(float64(c.R) * f), clamp(float64(c.G) * f), clamp(float64(c.B) * f)}
}

// Lerp interpolates two colors linearly in RGB, t is clamped
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return FromColorful(a.Colorful().BlendRgb(b.Colorful(), t))
}

// LerpLab interpolates in Lab space, perceptually even but slower than Lerp
func LerpLab(a, b RGB, t float64) RGB {
	return FromColorful(a.Colorful().BlendLab(b.Colorful(), t))
}

// ShiftHue rotates the hue by degrees keeping chroma and lightness
func ShiftHue(c RGB, degrees float64) RGB {
	h, chroma, l := c.Colorful().Hcl()
	h += degrees
	for h >= 360 {
		h -= 360
	}
	for h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hcl(h, chroma, l))
}

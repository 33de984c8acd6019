package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLToRGB converts hue (degrees, [0,360)), saturation and lightness
// (fractions, [0,1]) to 8-bit sRGB channels. Scaling to 0-255 rounds
// half-to-even instead of truncating, so hsl(120, 1, 0.5) lands exactly on
// (0, 255, 0).
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	cf := colorful.Hsl(normalizeHue(h), clamp01(s), clamp01(l))
	return roundToChannel(cf.R), roundToChannel(cf.G), roundToChannel(cf.B)
}

// RGBToHSL converts 8-bit sRGB channels to hue (degrees), saturation and
// lightness fractions.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	cf := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l = cf.Hsl()
	return normalizeHue(h), s, l
}

// FromHSL builds an opaque sRGB Color from HSL components.
func FromHSL(h, s, l float64) Color {
	r, g, b := HSLToRGB(h, s, l)
	return NewRGB(r, g, b)
}

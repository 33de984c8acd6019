package color

// Perceptual lightness deltas for interaction states. The shifts run on
// OKLCH lightness so they look uniform across hues.
const (
	hoverDelta   = 0.06
	pressedDelta = 0.08

	// lightnessFloor/Ceil bound derived states away from pure black/white;
	// a shift that would cross a bound flips direction instead.
	lightnessFloor = 0.03
	lightnessCeil  = 0.97

	disabledChromaScale  = 0.25
	disabledLightnessMix = 0.3
)

// DeriveHover returns the hover state of a color: lightness shifted up by a
// fixed perceptual delta, darker instead for colors already at the light
// bound. Chroma and hue are held; the result is clamped into sRGB gamut by
// chroma reduction only.
func DeriveHover(c Color) Color {
	return shiftLightness(c, hoverDelta)
}

// DerivePressed returns the pressed state: lightness shifted down, lighter
// instead for colors already at the dark bound.
func DerivePressed(c Color) Color {
	return shiftLightness(c, -pressedDelta)
}

// DeriveDisabled returns the disabled state: chroma collapsed toward gray
// and lightness pulled toward the middle, so the color visibly recedes
// without changing identity.
func DeriveDisabled(c Color) Color {
	l, ch, h := c.OKLCH()
	l = l + (0.5-l)*disabledLightnessMix
	return ClampToGamut(l, ch*disabledChromaScale, h, c.Alpha())
}

func shiftLightness(c Color, delta float64) Color {
	l, ch, h := c.OKLCH()
	shifted := l + delta
	if shifted > lightnessCeil || shifted < lightnessFloor {
		shifted = l - delta
	}
	return ClampToGamut(shifted, ch, h, c.Alpha())
}

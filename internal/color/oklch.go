package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// OKLab transform constants (Björn Ottosson's published matrices). go-colorful
// handles the sRGB gamma ramp; the two 3x3 hops between linear RGB and OKLab
// live here because the library predates OKLab support.

// ToOKLCH converts the color to its OKLCH representation. Already-OKLCH
// values are returned unchanged. Conversion is pure; the receiver is never
// mutated.
func (c Color) ToOKLCH() Color {
	if c.space == SpaceOKLCH {
		return c
	}
	lr, lg, lb := c.colorfulLinear()
	L, a, b := linearToOKLab(lr, lg, lb)
	chroma := math.Hypot(a, b)
	hue := 0.0
	// Zero-chroma grays have no meaningful hue; keep it at 0 rather than
	// whatever atan2 noise the float residue produces.
	if chroma > 1e-9 {
		hue = normalizeHue(math.Atan2(b, a) * 180 / math.Pi)
	} else {
		chroma = 0
	}
	return Color{space: SpaceOKLCH, l: clamp01(L), c: chroma, h: hue, alpha: c.alpha}
}

// ToSRGB converts the color to its 8-bit sRGB representation, clamping into
// gamut. Already-sRGB values are returned unchanged.
func (c Color) ToSRGB() Color {
	if c.space == SpaceSRGB {
		return c
	}
	hr := c.h * math.Pi / 180
	a := c.c * math.Cos(hr)
	b := c.c * math.Sin(hr)
	lr, lg, lb := okLabToLinear(c.l, a, b)
	cf := colorful.LinearRgb(lr, lg, lb).Clamped()
	return Color{
		space: SpaceSRGB,
		r:     roundToChannel(cf.R),
		g:     roundToChannel(cf.G),
		b:     roundToChannel(cf.B),
		alpha: c.alpha,
	}
}

func (c Color) colorfulLinear() (r, g, b float64) {
	return c.colorfulOf().LinearRgb()
}

func linearToOKLab(r, g, b float64) (L, a, bb float64) {
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lc := math.Cbrt(l)
	mc := math.Cbrt(m)
	sc := math.Cbrt(s)

	L = 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	a = 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	bb = 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc
	return L, a, bb
}

func okLabToLinear(L, a, b float64) (r, g, bb float64) {
	lc := L + 0.3963377774*a + 0.2158037573*b
	mc := L - 0.1055613458*a - 0.0638541728*b
	sc := L - 0.0894841775*a - 1.2914855480*b

	l := lc * lc * lc
	m := mc * mc * mc
	s := sc * sc * sc

	r = 4.0767416621*l - 3.3077115913*m + 0.2307590544*s
	g = -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	bb = -0.0041960863*l - 0.7034186147*m + 1.7076147010*s
	return r, g, bb
}

// InGamut reports whether an OKLCH triple maps into the sRGB cube without
// clamping.
func InGamut(l, c, h float64) bool {
	hr := h * math.Pi / 180
	a := c * math.Cos(hr)
	b := c * math.Sin(hr)
	lr, lg, lb := okLabToLinear(l, a, b)
	cf := colorful.LinearRgb(lr, lg, lb)
	return cf.IsValid()
}

// ClampToGamut returns the closest in-gamut color for an OKLCH triple by
// reducing chroma only; lightness and hue are preserved. Hue rotation is
// never used, since it would shift the perceived identity of the color.
func ClampToGamut(l, c, h, alpha float64) Color {
	l = clamp01(l)
	if c <= 0 || InGamut(l, c, h) {
		return NewOKLCHA(l, math.Max(0, c), h, alpha)
	}
	lo, hi := 0.0, c
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if InGamut(l, mid, h) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return NewOKLCHA(l, lo, h, alpha)
}

package color

import "math"

// WCAG 2.x contrast thresholds.
const (
	AANormal  = 4.5
	AALarge   = 3.0
	AAANormal = 7.0
	AAALarge  = 4.5
)

// RelativeLuminance computes the WCAG relative luminance of the color:
// 0.2126 R + 0.7152 G + 0.0722 B over gamma-expanded channels. The channel
// expansion is spelled out here because WCAG's 0.03928 cutoff differs
// (textually, not visibly) from the sRGB constant go-colorful linearizes with.
func RelativeLuminance(c Color) float64 {
	r, g, b := c.RGB()
	return 0.2126*wcagLinear(r) + 0.7152*wcagLinear(g) + 0.0722*wcagLinear(b)
}

func wcagLinear(ch uint8) float64 {
	v := float64(ch) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in
// [1, 21]. The ratio is symmetric in its arguments.
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// MeetsAA reports whether a contrast ratio satisfies WCAG AA.
func MeetsAA(ratio float64, largeText bool) bool {
	if largeText {
		return ratio >= AALarge
	}
	return ratio >= AANormal
}

// MeetsAAA reports whether a contrast ratio satisfies WCAG AAA.
func MeetsAAA(ratio float64, largeText bool) bool {
	if largeText {
		return ratio >= AAALarge
	}
	return ratio >= AAANormal
}

// ensureContrastStep is the OKLCH lightness increment used when walking a
// foreground color toward a contrast target.
const ensureContrastStep = 0.02

// EnsureContrast adjusts fg's OKLCH lightness monotonically toward 0 or 1,
// whichever direction increases contrast against bg, until target is met or
// lightness reaches a gamut bound. This is best-effort: when even the bound
// cannot satisfy the target the bound-clamped color is returned rather than
// looping. Chroma and hue are held; each step is re-clamped into gamut by
// chroma reduction.
func EnsureContrast(fg, bg Color, target float64) Color {
	if ContrastRatio(fg, bg) >= target {
		return fg
	}

	l, c, h := fg.OKLCH()
	dir := -1.0
	if RelativeLuminance(bg) < 0.5 {
		dir = 1.0
	}

	best := fg
	maxSteps := int(1/ensureContrastStep) + 1
	for i := 0; i < maxSteps; i++ {
		l = clamp01(l + dir*ensureContrastStep)
		candidate := ClampToGamut(l, c, h, fg.Alpha())
		best = candidate
		if ContrastRatio(candidate, bg) >= target {
			return candidate
		}
		if l <= 0 || l >= 1 {
			break
		}
	}
	return best
}

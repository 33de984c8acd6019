// Package color implements the perceptual color engine used by the theme
// pipeline: sRGB/OKLCH conversion, HSL helpers, WCAG contrast and derived
// interaction states.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color errors.
var (
	ErrInvalidLiteral = errors.New("invalid color literal")
)

// Space identifies the representation a Color carries.
type Space int

// Supported color spaces.
const (
	SpaceSRGB Space = iota
	SpaceOKLCH
)

// String returns the space name.
func (s Space) String() string {
	switch s {
	case SpaceSRGB:
		return "srgb"
	case SpaceOKLCH:
		return "oklch"
	default:
		return "unknown"
	}
}

// Color is an immutable color value in either sRGB (8-bit channels) or OKLCH
// (lightness 0..1, chroma >= 0, hue degrees [0,360)). Alpha is a 0..1
// fraction carried unchanged through every transform. All operations return
// new values.
type Color struct {
	space Space

	r, g, b uint8

	l, c, h float64

	alpha float64
}

// NewRGB creates an opaque sRGB color.
func NewRGB(r, g, b uint8) Color {
	return Color{space: SpaceSRGB, r: r, g: g, b: b, alpha: 1}
}

// NewRGBA creates an sRGB color with an explicit alpha fraction.
func NewRGBA(r, g, b uint8, alpha float64) Color {
	return Color{space: SpaceSRGB, r: r, g: g, b: b, alpha: clamp01(alpha)}
}

// NewOKLCH creates an opaque OKLCH color. Lightness is clamped to [0,1],
// chroma to >= 0 and hue is normalized into [0,360).
func NewOKLCH(l, c, h float64) Color {
	return NewOKLCHA(l, c, h, 1)
}

// NewOKLCHA creates an OKLCH color with an explicit alpha fraction.
func NewOKLCHA(l, c, h, alpha float64) Color {
	return Color{
		space: SpaceOKLCH,
		l:     clamp01(l),
		c:     math.Max(0, c),
		h:     normalizeHue(h),
		alpha: clamp01(alpha),
	}
}

// Parse reads a color literal. Accepted forms:
//
//	#rgb, #rrggbb, #rrggbbaa
//	rgb(r, g, b) / rgba(r, g, b, a) with 0-255 channels
//	r,g,b                            (bare Qt-style triple)
//	oklch(L C H) / oklch(L C H / a)  with L,C as fractions, H in degrees
func Parse(literal string) (Color, error) {
	s := strings.TrimSpace(literal)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "oklch(") && strings.HasSuffix(s, ")"):
		return parseOKLCHFunc(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[4:len(s)-1], false)
	case strings.Count(s, ",") == 2:
		return parseRGBFunc(s, false)
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal)
	}
}

func parseHex(s string) (Color, error) {
	if len(s) == 9 {
		alpha, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		c, err := parseHex(s[:7])
		if err != nil {
			return Color{}, err
		}
		c.alpha = float64(alpha) / 255
		return c, nil
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	r, g, b := cf.RGB255()
	return NewRGB(r, g, b), nil
}

func parseRGBFunc(args string, withAlpha bool) (Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, args)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, args)
		}
		ch[i] = uint8(v)
	}
	alpha := 1.0
	if withAlpha {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || v < 0 || v > 1 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, args)
		}
		alpha = v
	}
	return NewRGBA(ch[0], ch[1], ch[2], alpha), nil
}

func parseOKLCHFunc(s string) (Color, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(s, "oklch("), ")")
	alpha := 1.0
	if slash := strings.Index(body, "/"); slash >= 0 {
		v, err := strconv.ParseFloat(strings.TrimSpace(body[slash+1:]), 64)
		if err != nil || v < 0 || v > 1 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		alpha = v
		body = body[:slash]
	}
	fields := strings.Fields(body)
	if len(fields) != 3 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		vals[i] = v
	}
	return NewOKLCHA(vals[0], vals[1], vals[2], alpha), nil
}

// Space reports which representation this value carries.
func (c Color) Space() Space { return c.space }

// Alpha returns the alpha fraction.
func (c Color) Alpha() float64 { return c.alpha }

// RGB returns the 8-bit channels, converting from OKLCH if needed.
func (c Color) RGB() (r, g, b uint8) {
	s := c.ToSRGB()
	return s.r, s.g, s.b
}

// OKLCH returns lightness, chroma and hue, converting from sRGB if needed.
func (c Color) OKLCH() (l, ch, h float64) {
	o := c.ToOKLCH()
	return o.l, o.c, o.h
}

// Hex formats the color as a lowercase #rrggbb literal, converting to sRGB
// first. Alpha is appended as a third byte pair only when not fully opaque.
func (c Color) Hex() string {
	r, g, b := c.RGB()
	if c.alpha < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, roundToChannel(c.alpha))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String renders a readable form of the value in its native space.
func (c Color) String() string {
	if c.space == SpaceOKLCH {
		return fmt.Sprintf("oklch(%.4f %.4f %.1f)", c.l, c.c, c.h)
	}
	return c.Hex()
}

// clamp01 restricts v to [0,1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// normalizeHue wraps a hue angle into [0,360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// roundToChannel scales a 0..1 fraction to an 8-bit channel with
// round-half-to-even, avoiding the systematic truncation bias.
func roundToChannel(v float64) uint8 {
	scaled := math.RoundToEven(clamp01(v) * 255)
	return uint8(scaled)
}

// colorfulOf builds a go-colorful value from the sRGB representation.
func (c Color) colorfulOf() colorful.Color {
	s := c.ToSRGB()
	return colorful.Color{
		R: float64(s.r) / 255,
		G: float64(s.g) / 255,
		B: float64(s.b) / 255,
	}
}

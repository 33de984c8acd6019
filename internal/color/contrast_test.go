package color

import (
	"math"
	"testing"
)

func TestContrastRatioBlackWhite(t *testing.T) {
	ratio := ContrastRatio(NewRGB(0, 0, 0), NewRGB(255, 255, 255))
	if math.Abs(ratio-21) > 0.01 {
		t.Errorf("black/white contrast = %v, want 21", ratio)
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	pairs := [][2]Color{
		{NewRGB(46, 52, 54), NewRGB(211, 215, 207)},
		{NewRGB(255, 0, 0), NewRGB(0, 0, 255)},
		{NewRGB(128, 128, 128), NewRGB(130, 128, 126)},
		{NewRGB(0, 0, 0), NewRGB(0, 0, 0)},
	}
	for _, p := range pairs {
		ab := ContrastRatio(p[0], p[1])
		ba := ContrastRatio(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("contrast not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestContrastRatioIdentical(t *testing.T) {
	if ratio := ContrastRatio(NewRGB(90, 90, 90), NewRGB(90, 90, 90)); math.Abs(ratio-1) > 1e-12 {
		t.Errorf("self contrast = %v, want 1", ratio)
	}
}

func TestMeetsThresholds(t *testing.T) {
	tests := []struct {
		ratio     float64
		largeText bool
		aa, aaa   bool
	}{
		{4.5, false, true, false},
		{4.49, false, false, false},
		{3.0, true, true, false},
		{4.5, true, true, true},
		{7.0, false, true, true},
		{21, false, true, true},
		{1, false, false, false},
	}
	for _, tt := range tests {
		if got := MeetsAA(tt.ratio, tt.largeText); got != tt.aa {
			t.Errorf("MeetsAA(%v, %v) = %v, want %v", tt.ratio, tt.largeText, got, tt.aa)
		}
		if got := MeetsAAA(tt.ratio, tt.largeText); got != tt.aaa {
			t.Errorf("MeetsAAA(%v, %v) = %v, want %v", tt.ratio, tt.largeText, got, tt.aaa)
		}
	}
}

func TestEnsureContrastAlreadySufficient(t *testing.T) {
	fg := NewRGB(0, 0, 0)
	bg := NewRGB(255, 255, 255)
	if got := EnsureContrast(fg, bg, 4.5); got != fg {
		t.Errorf("EnsureContrast changed an already-passing color: %v", got)
	}
}

func TestEnsureContrastWhiteOnWhiteTerminates(t *testing.T) {
	white := NewRGB(255, 255, 255)
	got := EnsureContrast(white, white, 4.5)

	l, _, _ := got.OKLCH()
	if l >= 1 {
		t.Errorf("lightness did not move toward black: %v", l)
	}
	if ratio := ContrastRatio(got, white); ratio < 4.5 {
		t.Errorf("achievable target missed: ratio %v", ratio)
	}
}

func TestEnsureContrastDarkBackgroundLightens(t *testing.T) {
	fg := NewRGB(60, 60, 60)
	bg := NewRGB(20, 20, 20)
	got := EnsureContrast(fg, bg, 4.5)

	before, _, _ := fg.OKLCH()
	after, _, _ := got.OKLCH()
	if after <= before {
		t.Errorf("lightness moved the wrong way: %v -> %v", before, after)
	}
	if ratio := ContrastRatio(got, bg); ratio < 4.5 {
		t.Errorf("target not met: %v", ratio)
	}
}

func TestEnsureContrastBestEffortAtBound(t *testing.T) {
	// Mid-gray background cannot yield 21:1 against anything; the walk must
	// stop at a lightness bound instead of looping.
	fg := NewRGB(128, 128, 128)
	bg := NewRGB(128, 128, 128)
	got := EnsureContrast(fg, bg, 21)

	l, _, _ := got.OKLCH()
	if l != 0 && l != 1 {
		t.Errorf("best-effort result should sit at a bound, got lightness %v", l)
	}
}

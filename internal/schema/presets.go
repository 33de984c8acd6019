package schema

import (
	"github.com/shadetool/shade/internal/color"
)

// The presets are built entirely from the color engine: base tones picked in
// OKLCH, text roles pushed through EnsureContrast against their declared
// backgrounds, interaction variants derived. That construction keeps them
// self-consistent: they always validate with zero contrast violations.

// LightPreset returns the built-in light theme.
func LightPreset() *Schema {
	s := New("light")

	surface := color.NewOKLCH(0.98, 0.004, 250)
	surfaceAlt := color.NewOKLCH(0.94, 0.006, 250)
	accent := color.EnsureContrast(color.NewOKLCH(0.45, 0.12, 255), surface, color.AALarge)

	s.Roles[RoleSurfacePrimary] = surface
	s.Roles[RoleSurfaceSecondary] = surfaceAlt
	s.Roles[RoleContentPrimary] = color.EnsureContrast(color.NewOKLCH(0.25, 0.01, 250), surfaceAlt, color.AANormal)
	s.Roles[RoleContentSecondary] = color.EnsureContrast(color.NewOKLCH(0.45, 0.015, 250), surface, color.AANormal)
	s.Roles[RoleContentInverse] = color.EnsureContrast(color.NewOKLCH(0.99, 0, 0), accent, color.AANormal)
	s.Roles[RoleAccentPrimary] = accent
	s.Roles[RoleStateError] = color.NewOKLCH(0.5, 0.19, 29)
	s.Roles[RoleStateWarning] = color.NewOKLCH(0.55, 0.13, 70)
	s.Roles[RoleStateSuccess] = color.NewOKLCH(0.52, 0.13, 145)

	s.FillDerived()
	return s
}

// DarkPreset returns the built-in dark theme.
func DarkPreset() *Schema {
	s := New("dark")

	surface := color.NewOKLCH(0.22, 0.01, 250)
	surfaceAlt := color.NewOKLCH(0.28, 0.012, 250)
	accent := color.EnsureContrast(color.NewOKLCH(0.75, 0.12, 255), surface, color.AALarge)

	s.Roles[RoleSurfacePrimary] = surface
	s.Roles[RoleSurfaceSecondary] = surfaceAlt
	s.Roles[RoleContentPrimary] = color.EnsureContrast(color.NewOKLCH(0.93, 0.005, 250), surfaceAlt, color.AANormal)
	s.Roles[RoleContentSecondary] = color.EnsureContrast(color.NewOKLCH(0.78, 0.01, 250), surface, color.AANormal)
	s.Roles[RoleContentInverse] = color.EnsureContrast(color.NewOKLCH(0.2, 0.02, 255), accent, color.AANormal)
	s.Roles[RoleAccentPrimary] = accent
	s.Roles[RoleStateError] = color.NewOKLCH(0.68, 0.18, 25)
	s.Roles[RoleStateWarning] = color.NewOKLCH(0.78, 0.13, 80)
	s.Roles[RoleStateSuccess] = color.NewOKLCH(0.75, 0.13, 145)

	s.FillDerived()
	return s
}

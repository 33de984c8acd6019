// Package schema defines the canonical token model shared by every parser
// and renderer: named semantic color roles, structural and accessibility
// validation, and the built-in light/dark presets.
package schema

// Role is a toolkit-agnostic semantic color role, dot-namespaced by group
// (surface, content, accent, state) with optional interaction variants.
type Role string

// Canonical roles.
const (
	RoleSurfacePrimary   Role = "surface.primary"
	RoleSurfaceSecondary Role = "surface.secondary"
	RoleSurfaceHover     Role = "surface.hover"

	RoleContentPrimary   Role = "content.primary"
	RoleContentSecondary Role = "content.secondary"
	RoleContentInverse   Role = "content.inverse"
	RoleContentDisabled  Role = "content.disabled"

	RoleAccentPrimary  Role = "accent.primary"
	RoleAccentHover    Role = "accent.hover"
	RoleAccentPressed  Role = "accent.pressed"
	RoleAccentDisabled Role = "accent.disabled"

	RoleStateError   Role = "state.error"
	RoleStateWarning Role = "state.warning"
	RoleStateSuccess Role = "state.success"
)

// MandatoryRoles returns the roles every valid schema must bind. Interaction
// variants and disabled states are derivable, so they stay optional.
func MandatoryRoles() []Role {
	return []Role{
		RoleSurfacePrimary,
		RoleSurfaceSecondary,
		RoleContentPrimary,
		RoleContentSecondary,
		RoleContentInverse,
		RoleAccentPrimary,
		RoleStateError,
		RoleStateWarning,
		RoleStateSuccess,
	}
}

// AllRoles returns every canonical role in declaration order.
func AllRoles() []Role {
	return []Role{
		RoleSurfacePrimary,
		RoleSurfaceSecondary,
		RoleSurfaceHover,
		RoleContentPrimary,
		RoleContentSecondary,
		RoleContentInverse,
		RoleContentDisabled,
		RoleAccentPrimary,
		RoleAccentHover,
		RoleAccentPressed,
		RoleAccentDisabled,
		RoleStateError,
		RoleStateWarning,
		RoleStateSuccess,
	}
}

// IsCanonical reports whether r is one of the canonical roles.
func IsCanonical(r Role) bool {
	for _, known := range AllRoles() {
		if known == r {
			return true
		}
	}
	return false
}

// ContrastPair declares that a foreground role is rendered over a background
// role and must meet the given WCAG ratio.
type ContrastPair struct {
	Foreground Role
	Background Role
	MinRatio   float64
}

// ContrastPairs returns the foreground/background pairings checked during
// validation. Text-over-surface pairs require AA normal text; the accent
// swatch itself only needs non-text (large/UI) contrast.
func ContrastPairs() []ContrastPair {
	return []ContrastPair{
		{Foreground: RoleContentPrimary, Background: RoleSurfacePrimary, MinRatio: 4.5},
		{Foreground: RoleContentSecondary, Background: RoleSurfacePrimary, MinRatio: 4.5},
		{Foreground: RoleContentPrimary, Background: RoleSurfaceSecondary, MinRatio: 4.5},
		{Foreground: RoleContentInverse, Background: RoleAccentPrimary, MinRatio: 4.5},
		{Foreground: RoleAccentPrimary, Background: RoleSurfacePrimary, MinRatio: 3.0},
	}
}

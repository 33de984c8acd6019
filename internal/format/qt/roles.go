package qt

import "github.com/shadetool/shade/internal/schema"

// colorKey addresses one entry in a kdeglobals color section.
type colorKey struct {
	Section string
	Key     string
}

// kdeglobals color roles mapped to canonical roles; the renderer uses the
// exact inverse.
var keyToRole = map[colorKey]schema.Role{
	{"Colors:Window", "BackgroundNormal"}:    schema.RoleSurfacePrimary,
	{"Colors:Window", "ForegroundNormal"}:    schema.RoleContentPrimary,
	{"Colors:Window", "ForegroundInactive"}:  schema.RoleContentDisabled,
	{"Colors:Window", "ForegroundNegative"}:  schema.RoleStateError,
	{"Colors:Window", "ForegroundNeutral"}:   schema.RoleStateWarning,
	{"Colors:Window", "ForegroundPositive"}:  schema.RoleStateSuccess,
	{"Colors:View", "BackgroundNormal"}:      schema.RoleSurfaceSecondary,
	{"Colors:View", "ForegroundNormal"}:      schema.RoleContentSecondary,
	{"Colors:Selection", "BackgroundNormal"}: schema.RoleAccentPrimary,
	{"Colors:Selection", "ForegroundNormal"}: schema.RoleContentInverse,
}

var roleToKey = func() map[schema.Role]colorKey {
	m := make(map[schema.Role]colorKey, len(keyToRole))
	for k, role := range keyToRole {
		m[role] = k
	}
	return m
}()

// Kvantum GeneralColors keys mapped to canonical roles.
var kvantumKeyToRole = map[string]schema.Role{
	"window.color":         schema.RoleSurfacePrimary,
	"base.color":           schema.RoleSurfaceSecondary,
	"window.text.color":    schema.RoleContentPrimary,
	"text.color":           schema.RoleContentSecondary,
	"disabled.text.color":  schema.RoleContentDisabled,
	"highlight.color":      schema.RoleAccentPrimary,
	"highlight.text.color": schema.RoleContentInverse,
}

var roleToKvantumKey = func() map[schema.Role]string {
	m := make(map[schema.Role]string, len(kvantumKeyToRole))
	for k, role := range kvantumKeyToRole {
		m[role] = k
	}
	return m
}()

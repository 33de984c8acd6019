// Package gtk reads and writes GTK CSS color definitions
// (@define-color statements, GTK3 and GTK4 layouts).
package gtk

import "github.com/shadetool/shade/internal/schema"

// Legacy GTK variable names mapped to canonical roles. The renderer uses the
// exact inverse, so anything parsed through this table round-trips.
var nameToRole = map[string]schema.Role{
	"theme_bg_color":          schema.RoleSurfacePrimary,
	"theme_base_color":        schema.RoleSurfaceSecondary,
	"theme_fg_color":          schema.RoleContentPrimary,
	"theme_text_color":        schema.RoleContentSecondary,
	"theme_selected_bg_color": schema.RoleAccentPrimary,
	"theme_selected_fg_color": schema.RoleContentInverse,
	"insensitive_fg_color":    schema.RoleContentDisabled,
	"error_color":             schema.RoleStateError,
	"warning_color":           schema.RoleStateWarning,
	"success_color":           schema.RoleStateSuccess,
}

var roleToName = func() map[schema.Role]string {
	m := make(map[schema.Role]string, len(nameToRole))
	for name, role := range nameToRole {
		m[role] = name
	}
	return m
}()

package schema

import (
	"sort"

	"github.com/shadetool/shade/internal/color"
)

// Schema is the canonical intermediate representation of a theme: a name
// plus bindings from semantic roles to colors. Unknown roles carried by a
// source format are preserved under Extensions but never required.
//
// A Schema is owned by whoever produced it; validators and renderers only
// read it.
type Schema struct {
	// Name labels the theme (library entry name or source-derived).
	Name string

	// Roles binds canonical roles to colors.
	Roles map[Role]color.Color

	// Extensions preserves source entries with no canonical mapping, keyed
	// by the source's own identifier.
	Extensions map[string]color.Color
}

// New creates an empty schema with the given name.
func New(name string) *Schema {
	return &Schema{
		Name:       name,
		Roles:      make(map[Role]color.Color),
		Extensions: make(map[string]color.Color),
	}
}

// Set binds a role. Canonical roles land in Roles, anything else is
// preserved as an extension.
func (s *Schema) Set(role Role, c color.Color) {
	if IsCanonical(role) {
		s.Roles[role] = c
		return
	}
	s.Extensions[string(role)] = c
}

// Get returns the color bound to a canonical role.
func (s *Schema) Get(role Role) (color.Color, bool) {
	c, ok := s.Roles[role]
	return c, ok
}

// SortedRoles returns the bound canonical roles in ascending name order.
func (s *Schema) SortedRoles() []Role {
	roles := make([]Role, 0, len(s.Roles))
	for r := range s.Roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// SortedExtensions returns extension keys in ascending order.
func (s *Schema) SortedExtensions() []string {
	keys := make([]string, 0, len(s.Extensions))
	for k := range s.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (s *Schema) Clone() *Schema {
	out := New(s.Name)
	for r, c := range s.Roles {
		out.Roles[r] = c
	}
	for k, c := range s.Extensions {
		out.Extensions[k] = c
	}
	return out
}

// FillDerived populates missing interaction-variant roles from their base
// colors using the perceptual derivation rules. Existing bindings are left
// alone.
func (s *Schema) FillDerived() {
	accent, ok := s.Roles[RoleAccentPrimary]
	if ok {
		if _, bound := s.Roles[RoleAccentHover]; !bound {
			s.Roles[RoleAccentHover] = color.DeriveHover(accent)
		}
		if _, bound := s.Roles[RoleAccentPressed]; !bound {
			s.Roles[RoleAccentPressed] = color.DerivePressed(accent)
		}
		if _, bound := s.Roles[RoleAccentDisabled]; !bound {
			s.Roles[RoleAccentDisabled] = color.DeriveDisabled(accent)
		}
	}
	if surface, ok := s.Roles[RoleSurfacePrimary]; ok {
		if _, bound := s.Roles[RoleSurfaceHover]; !bound {
			s.Roles[RoleSurfaceHover] = color.DeriveHover(surface)
		}
	}
	if content, ok := s.Roles[RoleContentPrimary]; ok {
		if _, bound := s.Roles[RoleContentDisabled]; !bound {
			s.Roles[RoleContentDisabled] = color.DeriveDisabled(content)
		}
	}
}

// Package library manages named theme definitions: yaml files on disk plus
// the built-in presets, resolved by name and converted to color schemas.
package library

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/schema"
)

var (
	// ErrThemeNameRequired is returned when a theme has no name.
	ErrThemeNameRequired = errors.New("theme name is required")
	// ErrThemeNoColors is returned when a theme defines no colors.
	ErrThemeNoColors = errors.New("theme must define at least one color")
	// ErrThemeNotFound is returned when a theme is not found.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrThemeBuiltin is returned when a built-in theme is targeted by a
	// mutation.
	ErrThemeBuiltin = errors.New("built-in themes cannot be deleted")
)

// ThemeValidationError describes an invalid entry in a theme definition.
type ThemeValidationError struct {
	Theme   string
	Role    string
	Message string
}

func (e *ThemeValidationError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("theme %s: %s: %s", e.Theme, e.Role, e.Message)
	}
	return fmt.Sprintf("theme %s: %s", e.Theme, e.Message)
}

// Theme is a named theme definition as stored on disk: role names mapped to
// color literals in any accepted syntax.
type Theme struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Variant     string            `yaml:"variant,omitempty"` // light or dark
	Colors      map[string]string `yaml:"colors"`
	Source      string            `yaml:"-"` // file path or "builtin"
}

// Validate checks the definition is structurally usable. Color literals are
// checked during conversion, not here.
func (t *Theme) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	if len(t.Colors) == 0 {
		return ErrThemeNoColors
	}
	return nil
}

// Schema converts the definition into a color schema, parsing every literal.
// Canonical role names land in the schema roles, everything else becomes an
// extension.
func (t *Theme) Schema() (*schema.Schema, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	sch := schema.New(t.Name)
	names := make([]string, 0, len(t.Colors))
	for name := range t.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := color.Parse(t.Colors[name])
		if err != nil {
			return nil, &ThemeValidationError{
				Theme:   t.Name,
				Role:    name,
				Message: err.Error(),
			}
		}
		sch.Set(schema.Role(name), c)
	}
	return sch, nil
}

// FromSchema renders a schema back into a storable theme definition. All
// colors are written as hex literals.
func FromSchema(sch *schema.Schema, description, variant string) *Theme {
	t := &Theme{
		Name:        sch.Name,
		Description: description,
		Variant:     variant,
		Colors:      make(map[string]string, len(sch.Roles)+len(sch.Extensions)),
	}
	for _, role := range sch.SortedRoles() {
		t.Colors[string(role)] = sch.Roles[role].Hex()
	}
	for _, name := range sch.SortedExtensions() {
		t.Colors[name] = sch.Extensions[name].Hex()
	}
	return t
}

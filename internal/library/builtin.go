package library

import "github.com/shadetool/shade/internal/schema"

// BuiltinThemes returns the theme definitions bundled with shade. Both are
// derived from the schema presets, so they validate clean by construction.
func BuiltinThemes() []*Theme {
	light := FromSchema(schema.LightPreset(), "Bundled light theme", "light")
	light.Source = "builtin"

	dark := FromSchema(schema.DarkPreset(), "Bundled dark theme", "dark")
	dark.Source = "builtin"

	return []*Theme{dark, light}
}

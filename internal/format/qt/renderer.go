package qt

import (
	"fmt"
	"strings"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// alternateDarken is the fixed lightness delta used to derive
// BackgroundAlternate from BackgroundNormal when the schema carries no
// alternate of its own (Qt requires the key; the canonical model has no
// role for it).
const alternateDarken = 0.03

// Renderer writes the schema as a kdeglobals fragment plus a Kvantum
// kvconfig. Sections and keys are emitted sorted, so output is byte-stable.
type Renderer struct{}

// NewRenderer creates a Qt renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Format returns the Qt format id.
func (r *Renderer) Format() format.ID { return format.FormatQt }

// Render produces kdeglobals and kvconfig contents.
func (r *Renderer) Render(s *schema.Schema) (format.Artifact, error) {
	ini := make(iniData)
	for role, c := range s.Roles {
		key, ok := roleToKey[role]
		if !ok {
			continue
		}
		if _, exists := ini[key.Section]; !exists {
			ini[key.Section] = make(map[string]string)
		}
		ini[key.Section][key.Key] = c.Hex()
	}
	if len(ini) == 0 {
		return nil, &format.RenderError{Format: format.FormatQt, Reason: "schema binds no representable roles"}
	}

	// Qt expects BackgroundAlternate alongside every BackgroundNormal;
	// derive it by a fixed perceptual darkening when absent.
	for _, section := range []string{"Colors:Window", "Colors:View"} {
		entries, ok := ini[section]
		if !ok {
			continue
		}
		if _, exists := entries["BackgroundAlternate"]; exists {
			continue
		}
		normal, exists := entries["BackgroundNormal"]
		if !exists {
			continue
		}
		base, err := color.Parse(normal)
		if err != nil {
			return nil, &format.RenderError{Format: format.FormatQt, Reason: err.Error()}
		}
		l, ch, h := base.OKLCH()
		entries["BackgroundAlternate"] = color.ClampToGamut(l-alternateDarken, ch, h, base.Alpha()).Hex()
	}

	name := kvantumThemeName(s.Name)
	return format.Artifact{
		"kdeglobals": writeINI(ini),
		fmt.Sprintf("Kvantum/%s/%s.kvconfig", name, name): r.renderKvantum(s, name),
	}, nil
}

// renderKvantum writes the kvconfig by hand: the theme-name header must
// precede [GeneralColors], which sorted section emission cannot guarantee.
func (r *Renderer) renderKvantum(s *schema.Schema, name string) []byte {
	var buf strings.Builder
	fmt.Fprintf(&buf, "[%s]\n", name)
	fmt.Fprintf(&buf, "comment=%s (generated by shade)\n\n", s.Name)
	buf.WriteString("[GeneralColors]\n")

	keys := make([]string, 0, len(roleToKvantumKey))
	for _, role := range s.SortedRoles() {
		if key, ok := roleToKvantumKey[role]; ok {
			keys = append(keys, key+"="+s.Roles[role].Hex())
		}
	}
	for _, line := range keys {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

// kvantumThemeName sanitizes a schema name into a Kvantum theme directory
// name.
func kvantumThemeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if cleaned == "" {
		cleaned = "shade"
	}
	return cleaned
}

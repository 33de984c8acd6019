package qt

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// Parser reads kdeglobals [Colors:*] sections and Kvantum .kvconfig files.
// Partial Qt configs are legal: missing sections just leave roles unbound;
// validation surfaces the gaps as violations, not parse failures.
type Parser struct{}

// NewParser creates a Qt config parser.
func NewParser() *Parser { return &Parser{} }

// Format returns the Qt format id.
func (p *Parser) Format() format.ID { return format.FormatQt }

// CanParse sniffs for a kdeglobals file, a .kvconfig file, or INI content
// with a Qt color section.
func (p *Parser) CanParse(src format.Source) bool {
	base := filepath.Base(src.Path)
	if base == "kdeglobals" || strings.HasSuffix(base, ".kvconfig") {
		return true
	}
	data, err := src.Read()
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("[Colors:")) || bytes.Contains(data, []byte("[GeneralColors]"))
}

// Parse reads the source into a schema. Invalid color literals fail the
// whole parse; absent sections do not.
func (p *Parser) Parse(src format.Source) (*schema.Schema, error) {
	data, err := src.Read()
	if err != nil {
		return nil, &format.ParseError{Format: format.FormatQt, Path: src.Path, Reason: err.Error()}
	}

	ini, err := parseINI(data)
	if err != nil {
		return nil, &format.ParseError{Format: format.FormatQt, Path: src.Path, Reason: err.Error()}
	}

	s := schema.New(qtThemeName(src.Path))
	if general, ok := ini["GeneralColors"]; ok {
		if err := p.bindKvantum(s, general); err != nil {
			return nil, &format.ParseError{Format: format.FormatQt, Path: src.Path, Reason: err.Error()}
		}
		return s, nil
	}

	for section, entries := range ini {
		if !strings.HasPrefix(section, "Colors:") {
			continue
		}
		for key, value := range entries {
			c, err := color.Parse(value)
			if err != nil {
				return nil, &format.ParseError{
					Format: format.FormatQt,
					Path:   src.Path,
					Reason: fmt.Sprintf("%s/%s: %v", section, key, err),
				}
			}
			if role, ok := keyToRole[colorKey{section, key}]; ok {
				s.Roles[role] = c
			} else {
				s.Extensions[section+"/"+key] = c
			}
		}
	}
	return s, nil
}

func (p *Parser) bindKvantum(s *schema.Schema, entries map[string]string) error {
	for key, value := range entries {
		c, err := color.Parse(value)
		if err != nil {
			return fmt.Errorf("GeneralColors/%s: %v", key, err)
		}
		if role, ok := kvantumKeyToRole[key]; ok {
			s.Roles[role] = c
		} else {
			s.Extensions["GeneralColors/"+key] = c
		}
	}
	return nil
}

func qtThemeName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".kvconfig") {
		return strings.TrimSuffix(base, ".kvconfig")
	}
	return "kdeglobals"
}

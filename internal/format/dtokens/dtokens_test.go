package dtokens

import (
	"errors"
	"testing"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

const sampleTokens = `{
  "surface": {
    "primary": { "$value": "#2e3436", "$type": "color" },
    "secondary": { "$value": "{surface.primary}", "$type": "color" }
  },
  "content": {
    "primary": { "$value": "#d3d7cf", "$type": "color", "$description": "main text" }
  },
  "accent": {
    "primary": { "$value": "oklch(0.52 0.12 255)", "$type": "color" }
  },
  "brand": {
    "logo": { "$value": "#ff6600", "$type": "color" }
  }
}`

func TestCanParse(t *testing.T) {
	p := NewParser()
	if !p.CanParse(format.Source{Path: "theme.json", Data: []byte(sampleTokens)}) {
		t.Error("rejected a valid token document")
	}
	if p.CanParse(format.Source{Path: "theme.json", Data: []byte(`{"no": "tokens"}`)}) {
		t.Error("accepted JSON without $value leaves")
	}
	if p.CanParse(format.Source{Path: "theme.css", Data: []byte("@define-color a #fff;")}) {
		t.Error("accepted GTK CSS")
	}
}

func TestParseTokens(t *testing.T) {
	s, err := NewParser().Parse(format.Source{Path: "theme.json", Data: []byte(sampleTokens)})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c, _ := s.Get(schema.RoleSurfacePrimary); c.Hex() != "#2e3436" {
		t.Errorf("surface.primary = %s", c.Hex())
	}
	// Reference resolved to the same color.
	if c, _ := s.Get(schema.RoleSurfaceSecondary); c.Hex() != "#2e3436" {
		t.Errorf("reference not resolved: %s", c.Hex())
	}
	// OKLCH literal accepted.
	if _, ok := s.Get(schema.RoleAccentPrimary); !ok {
		t.Error("oklch literal rejected")
	}
	// Non-canonical paths preserved as extensions.
	if _, ok := s.Extensions["brand.logo"]; !ok {
		t.Error("brand.logo not preserved as extension")
	}
}

func TestParseReferenceCycle(t *testing.T) {
	doc := `{
  "a": { "x": { "$value": "{b.y}", "$type": "color" } },
  "b": { "y": { "$value": "{a.x}", "$type": "color" } }
}`
	var parseErr *format.ParseError
	if _, err := NewParser().Parse(format.Source{Path: "t.json", Data: []byte(doc)}); !errors.As(err, &parseErr) {
		t.Fatalf("cycle did not return ParseError, got %v", err)
	}
}

func TestParseDanglingReference(t *testing.T) {
	doc := `{"a": {"x": {"$value": "{missing.token}", "$type": "color"}}}`
	var parseErr *format.ParseError
	if _, err := NewParser().Parse(format.Source{Path: "t.json", Data: []byte(doc)}); !errors.As(err, &parseErr) {
		t.Fatalf("dangling reference did not return ParseError, got %v", err)
	}
}

func TestParseSkipsNonColorTypes(t *testing.T) {
	doc := `{
  "surface": { "primary": { "$value": "#2e3436", "$type": "color" } },
  "spacing": { "small": { "$value": "4px", "$type": "dimension" } }
}`
	s, err := NewParser().Parse(format.Source{Path: "t.json", Data: []byte(doc)})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := s.Extensions["spacing.small"]; ok {
		t.Error("dimension token bound as a color")
	}
}

func TestRenderRoundTripIncludesExtensions(t *testing.T) {
	s := schema.New("export")
	s.Roles[schema.RoleSurfacePrimary] = color.NewRGB(0x2e, 0x34, 0x36)
	s.Roles[schema.RoleAccentPrimary] = color.NewRGB(0x34, 0x65, 0xa4)
	s.Extensions["brand.logo"] = color.NewRGB(0xff, 0x66, 0x00)

	artifact, err := NewRenderer().Render(s)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	reparsed, err := NewParser().Parse(format.Source{Path: "tokens.json", Data: artifact[tokensPath]})
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}

	if c, _ := reparsed.Get(schema.RoleSurfacePrimary); c.Hex() != "#2e3436" {
		t.Errorf("surface.primary drifted: %s", c.Hex())
	}
	ext, ok := reparsed.Extensions["brand.logo"]
	if !ok {
		t.Fatal("extension lost in round trip")
	}
	if ext.Hex() != "#ff6600" {
		t.Errorf("extension drifted: %s", ext.Hex())
	}
}

func TestRenderStable(t *testing.T) {
	s := schema.New("export")
	s.Roles[schema.RoleSurfacePrimary] = color.NewRGB(1, 2, 3)
	s.Roles[schema.RoleStateError] = color.NewRGB(200, 0, 0)

	r := NewRenderer()
	a, err := r.Render(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(a[tokensPath]) != string(b[tokensPath]) {
		t.Error("unstable token output")
	}
}

package gtk

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

const defineColorRule = "@define-color"

// Parser reads @define-color statements from GTK CSS. When pointed at a
// theme directory it prefers the GTK4 stylesheet and falls back to the GTK3
// one.
type Parser struct{}

// NewParser creates a GTK CSS parser.
func NewParser() *Parser { return &Parser{} }

// Format returns the GTK format id.
func (p *Parser) Format() format.ID { return format.FormatGTK }

// CanParse sniffs for a GTK stylesheet: either a theme directory carrying
// one, or CSS content with at least one @define-color statement.
func (p *Parser) CanParse(src format.Source) bool {
	if src.IsDir() {
		return stylesheetPath(src.Path) != ""
	}
	if src.Data == nil && !strings.HasSuffix(src.Path, ".css") {
		return false
	}
	data, err := src.Read()
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(defineColorRule))
}

// Parse reads the source into a schema. Parsing is all-or-nothing: cyclic or
// unresolvable references and invalid literals return a ParseError without a
// partial schema.
func (p *Parser) Parse(src format.Source) (*schema.Schema, error) {
	path := src.Path
	if src.IsDir() {
		path = stylesheetPath(src.Path)
		if path == "" {
			return nil, &format.ParseError{Format: format.FormatGTK, Path: src.Path, Reason: "no gtk.css found"}
		}
		src = format.Source{Path: path}
	}

	data, err := src.Read()
	if err != nil {
		return nil, &format.ParseError{Format: format.FormatGTK, Path: path, Reason: err.Error()}
	}

	raw := scanDefineColors(data)
	if len(raw) == 0 {
		return nil, &format.ParseError{Format: format.FormatGTK, Path: path, Reason: "no @define-color statements"}
	}

	s := schema.New(themeName(path))
	for name := range raw {
		resolved, err := resolveReference(raw, name, nil)
		if err != nil {
			return nil, &format.ParseError{Format: format.FormatGTK, Path: path, Reason: err.Error()}
		}
		c, err := color.Parse(resolved)
		if err != nil {
			return nil, &format.ParseError{
				Format: format.FormatGTK,
				Path:   path,
				Reason: fmt.Sprintf("%s: %v", name, err),
			}
		}
		if role, ok := nameToRole[name]; ok {
			s.Roles[role] = c
		} else {
			s.Extensions[name] = c
		}
	}
	return s, nil
}

// scanDefineColors walks the CSS grammar and collects @define-color
// statements as raw name/value text. Values may be references (@other-name),
// resolved afterwards.
func scanDefineColors(data []byte) map[string]string {
	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	entries := make(map[string]string)
	for {
		gt, _, ruleData := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return entries
		case css.AtRuleGrammar:
			if string(ruleData) != defineColorRule {
				continue
			}
			name, value := splitDefineColor(parser.Values())
			if name != "" && value != "" {
				entries[name] = value
			}
		}
	}
}

// splitDefineColor takes the token stream after the at-keyword: the first
// identifier is the variable name, the remaining non-whitespace tokens form
// the value.
func splitDefineColor(tokens []css.Token) (name, value string) {
	var valueParts []string
	for _, tok := range tokens {
		if tok.TokenType == css.WhitespaceToken {
			continue
		}
		if name == "" {
			if tok.TokenType != css.IdentToken {
				return "", ""
			}
			name = string(tok.Data)
			continue
		}
		valueParts = append(valueParts, string(tok.Data))
	}
	return name, strings.Join(valueParts, "")
}

// resolveReference follows @name chains through the table with an explicit
// visited set; a cycle is an error, not a stack overflow.
func resolveReference(table map[string]string, name string, visited []string) (string, error) {
	for _, seen := range visited {
		if seen == name {
			return "", fmt.Errorf("reference cycle: %s", strings.Join(append(visited, name), " -> "))
		}
	}
	value, ok := table[name]
	if !ok {
		return "", fmt.Errorf("undefined color reference @%s", name)
	}
	if strings.HasPrefix(value, "@") {
		return resolveReference(table, strings.TrimPrefix(value, "@"), append(visited, name))
	}
	return value, nil
}

// stylesheetPath locates a stylesheet inside a theme directory, GTK4 first.
func stylesheetPath(dir string) string {
	for _, candidate := range []string{
		filepath.Join(dir, "gtk-4.0", "gtk.css"),
		filepath.Join(dir, "gtk-3.0", "gtk.css"),
		filepath.Join(dir, "gtk.css"),
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func themeName(path string) string {
	base := filepath.Base(filepath.Dir(path))
	if base == "gtk-3.0" || base == "gtk-4.0" {
		base = filepath.Base(filepath.Dir(filepath.Dir(path)))
	}
	if base == "." || base == string(filepath.Separator) {
		base = strings.TrimSuffix(filepath.Base(path), ".css")
	}
	return base
}

// Package dtokens reads and writes W3C-style JSON design tokens: a nested
// object tree whose leaves carry $value/$type, with {group.token}
// references.
package dtokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shadetool/shade/internal/color"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// Parser reads a design-token JSON document into the canonical schema.
type Parser struct{}

// NewParser creates a design-token parser.
func NewParser() *Parser { return &Parser{} }

// Format returns the tokens format id.
func (p *Parser) Format() format.ID { return format.FormatTokens }

// CanParse sniffs for a JSON object containing token leaves.
func (p *Parser) CanParse(src format.Source) bool {
	if src.Data == nil && !strings.HasSuffix(src.Path, ".json") {
		return false
	}
	data, err := src.Read()
	if err != nil {
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{' && bytes.Contains(trimmed, []byte(`"$value"`))
}

// tokenLeaf is one $value node, addressed by its dotted path.
type tokenLeaf struct {
	Value       string
	Type        string
	Description string
}

// Parse reads the document. References are resolved with an explicit
// visited set; cycles, dangling references and invalid literals fail the
// whole parse.
func (p *Parser) Parse(src format.Source) (*schema.Schema, error) {
	data, err := src.Read()
	if err != nil {
		return nil, &format.ParseError{Format: format.FormatTokens, Path: src.Path, Reason: err.Error()}
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &format.ParseError{Format: format.FormatTokens, Path: src.Path, Reason: err.Error()}
	}

	leaves := make(map[string]tokenLeaf)
	if err := collectLeaves(tree, nil, leaves); err != nil {
		return nil, &format.ParseError{Format: format.FormatTokens, Path: src.Path, Reason: err.Error()}
	}

	s := schema.New(tokenThemeName(src.Path))
	// Deterministic iteration keeps error messages stable.
	paths := make([]string, 0, len(leaves))
	for path := range leaves {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		leaf := leaves[path]
		if leaf.Type != "" && leaf.Type != "color" {
			continue
		}
		literal, err := resolveValue(leaves, path, leaf.Value, nil)
		if err != nil {
			return nil, &format.ParseError{Format: format.FormatTokens, Path: src.Path, Reason: err.Error()}
		}
		c, err := color.Parse(literal)
		if err != nil {
			return nil, &format.ParseError{
				Format: format.FormatTokens,
				Path:   src.Path,
				Reason: fmt.Sprintf("%s: %v", path, err),
			}
		}
		s.Set(schema.Role(path), c)
	}
	return s, nil
}

// collectLeaves walks the object tree depth first. A node carrying $value is
// a leaf; everything else is a group.
func collectLeaves(node map[string]any, path []string, out map[string]tokenLeaf) error {
	if raw, ok := node["$value"]; ok {
		value, ok := raw.(string)
		if !ok {
			return fmt.Errorf("token %s: $value must be a string", strings.Join(path, "."))
		}
		leaf := tokenLeaf{Value: value}
		if t, ok := node["$type"].(string); ok {
			leaf.Type = t
		}
		if d, ok := node["$description"].(string); ok {
			leaf.Description = d
		}
		out[strings.Join(path, ".")] = leaf
		return nil
	}

	for key, child := range node {
		if strings.HasPrefix(key, "$") {
			continue
		}
		childMap, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("token group %s: %s is neither group nor token", strings.Join(path, "."), key)
		}
		childPath := append(append([]string(nil), path...), key)
		if err := collectLeaves(childMap, childPath, out); err != nil {
			return err
		}
	}
	return nil
}

// resolveValue follows {group.token} references through the leaf table,
// guarding against cycles with an explicit visited set.
func resolveValue(leaves map[string]tokenLeaf, path, value string, visited []string) (string, error) {
	if !strings.HasPrefix(value, "{") || !strings.HasSuffix(value, "}") {
		return value, nil
	}
	for _, seen := range visited {
		if seen == path {
			return "", fmt.Errorf("token reference cycle: %s", strings.Join(append(visited, path), " -> "))
		}
	}
	target := strings.TrimSuffix(strings.TrimPrefix(value, "{"), "}")
	leaf, ok := leaves[target]
	if !ok {
		return "", fmt.Errorf("token %s references undefined token {%s}", path, target)
	}
	return resolveValue(leaves, target, leaf.Value, append(visited, path))
}

func tokenThemeName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, ".json")
	if name == "" || name == "." {
		return "tokens"
	}
	return name
}

package dtokens

import (
	"encoding/json"
	"strings"

	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

const tokensPath = "tokens.json"

// Renderer writes the schema back to the design-token format. Unlike the
// toolkit renderers this format has no closed vocabulary, so extension roles
// are emitted too: the export is lossless.
type Renderer struct{}

// NewRenderer creates a design-token renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Format returns the tokens format id.
func (r *Renderer) Format() format.ID { return format.FormatTokens }

// Render produces a single tokens.json. encoding/json sorts object keys, so
// output is byte-stable for identical schemas.
func (r *Renderer) Render(s *schema.Schema) (format.Artifact, error) {
	tree := make(map[string]any)

	for _, role := range s.SortedRoles() {
		insertLeaf(tree, string(role), s.Roles[role].Hex())
	}
	for _, key := range s.SortedExtensions() {
		insertLeaf(tree, key, s.Extensions[key].Hex())
	}
	if len(tree) == 0 {
		return nil, &format.RenderError{Format: format.FormatTokens, Reason: "schema binds no roles"}
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, &format.RenderError{Format: format.FormatTokens, Reason: err.Error()}
	}
	return format.Artifact{tokensPath: append(data, '\n')}, nil
}

// insertLeaf places a $value node at a dotted path, creating intermediate
// groups as needed. A path segment that collides with an existing leaf wins
// no special treatment; the last write applies.
func insertLeaf(tree map[string]any, dotted, hex string) {
	node := tree
	segments := strings.Split(dotted, ".")
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[seg] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = map[string]any{
		"$value": hex,
		"$type":  "color",
	}
}

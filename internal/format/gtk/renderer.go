package gtk

import (
	"bytes"
	"fmt"

	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// Output paths inside the rendered artifact. The same stylesheet serves both
// toolkit generations.
const (
	gtk3Path = "gtk-3.0/gtk.css"
	gtk4Path = "gtk-4.0/gtk.css"
)

// Renderer writes the schema as @define-color statements. Lines are emitted
// in ascending role-name order so identical schemas produce byte-identical
// output; backup diffing and the idempotence tests rely on that. Extension
// roles are not emitted: the GTK variable vocabulary is closed by the role
// table.
type Renderer struct{}

// NewRenderer creates a GTK renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Format returns the GTK format id.
func (r *Renderer) Format() format.ID { return format.FormatGTK }

// Render produces the GTK3 and GTK4 stylesheets.
func (r *Renderer) Render(s *schema.Schema) (format.Artifact, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "/* %s - generated by shade */\n", s.Name)

	emitted := 0
	for _, role := range s.SortedRoles() {
		name, ok := roleToName[role]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "@define-color %s %s;\n", name, s.Roles[role].Hex())
		emitted++
	}
	if emitted == 0 {
		return nil, &format.RenderError{Format: format.FormatGTK, Reason: "schema binds no representable roles"}
	}

	content := buf.Bytes()
	return format.Artifact{
		gtk3Path: content,
		gtk4Path: append([]byte(nil), content...),
	}, nil
}

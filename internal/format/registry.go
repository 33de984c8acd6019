package format

import (
	"fmt"

	"github.com/shadetool/shade/internal/schema"
)

// Registry holds the closed set of parsers and renderers. Dispatch happens
// here, never by branching on file extensions inside shared logic.
type Registry struct {
	parsers   []Parser
	renderers map[ID]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[ID]Renderer)}
}

// RegisterParser appends a parser. Sniff order follows registration order.
func (r *Registry) RegisterParser(p Parser) {
	r.parsers = append(r.parsers, p)
}

// RegisterRenderer adds a renderer for its format.
func (r *Registry) RegisterRenderer(rd Renderer) {
	r.renderers[rd.Format()] = rd
}

// Resolve returns the first parser whose sniff accepts the source.
func (r *Registry) Resolve(src Source) (Parser, error) {
	for _, p := range r.parsers {
		if p.CanParse(src) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoParser, src.Path)
}

// Parse resolves and runs the matching parser in one step.
func (r *Registry) Parse(src Source) (*schema.Schema, error) {
	p, err := r.Resolve(src)
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

// Renderer returns the renderer for a format, if registered.
func (r *Registry) Renderer(id ID) (Renderer, bool) {
	rd, ok := r.renderers[id]
	return rd, ok
}

// Package format defines the parser/renderer contract shared by every
// supported theme format, plus the registry that dispatches a source to the
// parser that understands it.
package format

import (
	"errors"
	"fmt"
	"os"

	"github.com/shadetool/shade/internal/schema"
)

// Format errors.
var (
	ErrNoParser = errors.New("no parser accepts the source")
)

// ID identifies a theme format.
type ID string

// Supported formats.
const (
	FormatGTK    ID = "gtk"
	FormatQt     ID = "qt"
	FormatTokens ID = "tokens"
)

// Source is a theme input: a path (file or directory, format dependent) with
// optionally preloaded content. Parsers sniffing a source must not have side
// effects beyond reading it.
type Source struct {
	Path string
	Data []byte
}

// Read returns the source content, loading from Path when Data is unset.
func (s Source) Read() ([]byte, error) {
	if s.Data != nil {
		return s.Data, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", s.Path, err)
	}
	return data, nil
}

// IsDir reports whether the source path exists and is a directory.
func (s Source) IsDir() bool {
	if s.Path == "" {
		return false
	}
	info, err := os.Stat(s.Path)
	return err == nil && info.IsDir()
}

// Artifact maps relative output paths to rendered file contents. Rendering
// is pure: the same schema always yields byte-identical artifacts.
type Artifact map[string][]byte

// Parser reads one theme format into the canonical schema. Parse is
// all-or-nothing: on malformed input it returns a ParseError and no schema.
type Parser interface {
	Format() ID

	// CanParse is a cheap sniff; it may read the source but must not
	// mutate anything.
	CanParse(src Source) bool

	Parse(src Source) (*schema.Schema, error)
}

// Renderer writes the canonical schema into one theme format.
type Renderer interface {
	Format() ID
	Render(s *schema.Schema) (Artifact, error)
}

// ParseError reports malformed or cyclic source input. It always aborts the
// operation that triggered the parse.
type ParseError struct {
	Format ID
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s source %s: %s", e.Format, e.Path, e.Reason)
	}
	return fmt.Sprintf("parse %s source: %s", e.Format, e.Reason)
}

// RenderError reports a schema the renderer cannot represent. It aborts only
// the handler using that renderer.
type RenderError struct {
	Format ID
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.Format, e.Reason)
}

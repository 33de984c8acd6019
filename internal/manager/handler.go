package manager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shadetool/shade/internal/format"
)

// Handler applies one rendered format to its destination on disk. Handlers
// are the only components that mutate target files; everything before them
// in the pipeline is pure.
type Handler interface {
	// ID names the handler in results and logs.
	ID() string

	// Format is the theme format this handler consumes.
	Format() format.ID

	// Available reports whether the destination exists on this system.
	// Unavailable handlers are skipped, never failed.
	Available() bool

	// TargetPaths resolves the absolute paths an artifact will touch. It is
	// called before Apply so the snapshot can cover them.
	TargetPaths(art format.Artifact) []string

	// Apply writes the artifact to its destination.
	Apply(art format.Artifact) error
}

// FileHandler writes rendered artifacts under a root directory, using the
// artifact's relative paths as the layout.
type FileHandler struct {
	id     string
	format format.ID
	root   string
}

// NewFileHandler creates a handler rooted at dir.
func NewFileHandler(id string, f format.ID, root string) *FileHandler {
	return &FileHandler{id: id, format: f, root: root}
}

// ID implements Handler.
func (h *FileHandler) ID() string { return h.id }

// Format implements Handler.
func (h *FileHandler) Format() format.ID { return h.format }

// Available reports whether the root directory exists.
func (h *FileHandler) Available() bool {
	info, err := os.Stat(h.root)
	return err == nil && info.IsDir()
}

// TargetPaths implements Handler.
func (h *FileHandler) TargetPaths(art format.Artifact) []string {
	paths := make([]string, 0, len(art))
	for rel := range art {
		paths = append(paths, filepath.Join(h.root, rel))
	}
	return paths
}

// Apply writes every artifact file under the root.
func (h *FileHandler) Apply(art format.Artifact) error {
	for rel, data := range art {
		path := filepath.Join(h.root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("handler %s: %w", h.id, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("handler %s: %w", h.id, err)
		}
	}
	return nil
}

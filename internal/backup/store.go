package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	metaFileName = "meta.json"
	idTimeLayout = "20060102-150405"
	maxIDRetries = 1000
)

// FileEntry records one file covered by a snapshot. A file that did not
// exist when the snapshot was taken has an empty Name; restoring removes it
// again.
type FileEntry struct {
	// Name is the stored file name inside the backup directory, empty when
	// the origin was absent at snapshot time.
	Name string `json:"name,omitempty"`

	// Origin is the absolute path the file came from and restores to.
	Origin string `json:"origin"`

	// SHA256 is the hex content hash, used to detect corruption before a
	// restore touches anything.
	SHA256 string `json:"sha256,omitempty"`
}

// Backup describes one snapshot in the chain.
type Backup struct {
	// ID is the monotonically-unique backup id (timestamp plus
	// disambiguator).
	ID string `json:"id"`

	// Label names the theme or operation that triggered the snapshot.
	Label string `json:"label"`

	// Reason records why the snapshot was taken (apply, pre-restore, ...).
	Reason string `json:"reason"`

	// CreatedAt is when the snapshot was captured.
	CreatedAt time.Time `json:"created_at"`

	// Files lists the covered files.
	Files []FileEntry `json:"files"`
}

// Store is the backup chain rooted at one directory: one subdirectory per
// backup id holding the raw snapshot files plus meta.json. All mutating
// methods expect the caller to hold the store Lock; the orchestrator
// acquires it once per apply.
type Store struct {
	root   string
	logger zerolog.Logger

	mu        sync.Mutex
	lastStamp string
	lastSeq   int
}

// Open creates a store over the given directory, creating it if missing.
func Open(root string, logger zerolog.Logger) (*Store, error) {
	if root == "" {
		return nil, &Error{Op: "open", Err: fmt.Errorf("store root is required")}
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	return &Store{root: root, logger: logger}, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// nextID proposes a backup id. Second-granularity timestamps collide under
// rapid snapshots, so a monotonically increasing disambiguator is appended.
// In-memory state alone cannot make this unique across processes; createDir
// settles ownership on disk.
func (s *Store) nextID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := now.UTC().Format(idTimeLayout)
	if stamp == s.lastStamp {
		s.lastSeq++
	} else {
		s.lastStamp = stamp
		s.lastSeq = 0
	}
	return fmt.Sprintf("%s.%03d", stamp, s.lastSeq)
}

// createDir claims a fresh backup directory. os.Mkdir fails on an existing
// directory, so an id already taken by another process bumps the sequence
// and retries instead of overwriting the earlier backup.
func (s *Store) createDir(now time.Time) (id, dir string, err error) {
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		id = s.nextID(now)
		dir = filepath.Join(s.root, id)
		err = os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", &Error{Op: "snapshot", ID: id, Err: err}
		}
	}
	return "", "", &Error{Op: "snapshot", Err: fmt.Errorf("no free backup id after %d attempts", maxIDRetries)}
}

// Snapshot captures the current on-disk state of the given paths under a
// fresh id. Absent paths are recorded so a restore can remove files an
// apply created.
func (s *Store) Snapshot(label, reason string, paths []string) (*Backup, error) {
	id, dir, err := s.createDir(time.Now())
	if err != nil {
		return nil, err
	}

	b := &Backup{
		ID:        id,
		Label:     label,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}

	for i, origin := range paths {
		data, err := os.ReadFile(origin)
		if err != nil {
			if os.IsNotExist(err) {
				b.Files = append(b.Files, FileEntry{Origin: origin})
				continue
			}
			_ = os.RemoveAll(dir)
			return nil, &Error{Op: "snapshot", ID: id, Err: err}
		}

		name := fmt.Sprintf("%03d-%s", i, filepath.Base(origin))
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			_ = os.RemoveAll(dir)
			return nil, &Error{Op: "snapshot", ID: id, Err: err}
		}
		sum := sha256.Sum256(data)
		b.Files = append(b.Files, FileEntry{
			Name:   name,
			Origin: origin,
			SHA256: hex.EncodeToString(sum[:]),
		})
	}

	if err := s.writeMeta(dir, b); err != nil {
		_ = os.RemoveAll(dir)
		return nil, &Error{Op: "snapshot", ID: id, Err: err}
	}

	s.logger.Info().
		Str("backup", id).
		Str("label", label).
		Int("files", len(b.Files)).
		Msg("snapshot captured")
	return b, nil
}

func (s *Store) writeMeta(dir string, b *Backup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metaFileName), data, 0o600)
}

// Get loads one backup's metadata by id.
func (s *Store) Get(id string) (*Backup, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, metaFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Op: "get", ID: id, Err: ErrBackupNotFound}
		}
		return nil, &Error{Op: "get", ID: id, Err: err}
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &Error{Op: "get", ID: id, Err: fmt.Errorf("%w: %v", ErrCorrupted, err)}
	}
	return &b, nil
}

// List returns all backups, newest first. Entries without readable metadata
// are skipped; the chain must stay usable even when one snapshot rots.
func (s *Store) List() ([]*Backup, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &Error{Op: "list", Err: err}
	}

	var backups []*Backup
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, err := s.Get(entry.Name())
		if err != nil {
			s.logger.Warn().Str("backup", entry.Name()).Err(err).Msg("skipping unreadable backup")
			continue
		}
		backups = append(backups, b)
	}

	// Ids are lexicographically ordered by construction.
	sort.Slice(backups, func(i, j int) bool { return backups[i].ID > backups[j].ID })
	return backups, nil
}

// Restore writes a backup's snapshot back to its origins. An empty id
// resolves to the most recent backup. Before touching anything the store
// verifies the snapshot against its content hashes and captures a fresh
// pre-restore snapshot, so a restore that fails partway is itself rolled
// back.
func (s *Store) Restore(id string) error {
	var b *Backup
	if id == "" {
		backups, err := s.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return &Error{Op: "restore", Err: ErrNoBackups}
		}
		b = backups[0]
	} else {
		var err error
		if b, err = s.Get(id); err != nil {
			return err
		}
	}

	if err := s.verify(b); err != nil {
		return err
	}

	origins := make([]string, 0, len(b.Files))
	for _, f := range b.Files {
		origins = append(origins, f.Origin)
	}
	pre, err := s.Snapshot(b.Label, "pre-restore", origins)
	if err != nil {
		return err
	}

	if err := s.writeFiles(b); err != nil {
		s.logger.Error().Str("backup", b.ID).Err(err).Msg("restore failed, rolling back")
		if rbErr := s.writeFiles(pre); rbErr != nil {
			return &Error{Op: "restore", ID: b.ID,
				Err: fmt.Errorf("restore failed (%v) and rollback to %s failed: %w", err, pre.ID, rbErr)}
		}
		return &Error{Op: "restore", ID: b.ID, Err: err}
	}

	s.logger.Info().Str("backup", b.ID).Msg("restore complete")
	return nil
}

// verify checks every stored file exists and matches its recorded hash.
func (s *Store) verify(b *Backup) error {
	dir := filepath.Join(s.root, b.ID)
	for _, f := range b.Files {
		if f.Name == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		if err != nil {
			return &Error{Op: "verify", ID: b.ID, Err: fmt.Errorf("%w: %v", ErrCorrupted, err)}
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != f.SHA256 {
			return &Error{Op: "verify", ID: b.ID,
				Err: fmt.Errorf("%w: %s content hash mismatch", ErrCorrupted, f.Name)}
		}
	}
	return nil
}

// writeFiles copies a verified snapshot back over its origins. Entries with
// no stored file mean the origin must not exist afterwards.
func (s *Store) writeFiles(b *Backup) error {
	dir := filepath.Join(s.root, b.ID)
	for _, f := range b.Files {
		if f.Name == "" {
			if err := os.Remove(f.Origin); err != nil && !os.IsNotExist(err) {
				return err
			}
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(f.Origin), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(f.Origin, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Prune deletes all but the keepN most recent backups, oldest first. It is
// a no-op when the chain is already within budget.
func (s *Store) Prune(keepN int) ([]string, error) {
	if keepN < 0 {
		keepN = 0
	}
	backups, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(backups) <= keepN {
		return nil, nil
	}

	victims := backups[keepN:]
	removed := make([]string, 0, len(victims))
	// Oldest first, so an interrupted prune leaves the newest intact.
	for i := len(victims) - 1; i >= 0; i-- {
		id := victims[i].ID
		if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
			return removed, &Error{Op: "prune", ID: id, Err: err}
		}
		removed = append(removed, id)
		s.logger.Debug().Str("backup", id).Msg("pruned")
	}
	return removed, nil
}

// Delete removes one backup by id.
func (s *Store) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
		return &Error{Op: "delete", ID: id, Err: err}
	}
	s.logger.Info().Str("backup", id).Msg("backup deleted")
	return nil
}

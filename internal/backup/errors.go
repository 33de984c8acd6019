// Package backup provides the content-addressed snapshot store that makes
// applying a theme safe to retry and undo: snapshot, restore with automatic
// rollback, and retention pruning.
package backup

import (
	"errors"
	"fmt"
)

// Store errors.
var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrNoBackups      = errors.New("no backups exist")
	ErrStoreBusy      = errors.New("backup store is locked by another operation")
	ErrCorrupted      = errors.New("backup snapshot is corrupted")
)

// Error wraps a failed store operation with the backup it concerned and the
// originating cause. Storage failures are never silently ignored.
type Error struct {
	Op  string
	ID  string
	Err error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("backup %s %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("backup %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

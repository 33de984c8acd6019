package manager

import (
	"time"

	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// State is a phase of the apply pipeline.
type State string

// Pipeline states. An apply moves strictly forward until it terminates in
// Committed or RolledBack.
const (
	StateIdle         State = "idle"
	StateParsing      State = "parsing"
	StateValidating   State = "validating"
	StateSnapshotting State = "snapshotting"
	StateApplying     State = "applying"
	StateCommitted    State = "committed"
	StateRolledBack   State = "rolled-back"
)

// HandlerOutcome classifies how one handler ended up.
type HandlerOutcome string

// Handler outcomes.
const (
	HandlerApplied HandlerOutcome = "applied"
	HandlerFailed  HandlerOutcome = "failed"
	HandlerSkipped HandlerOutcome = "skipped"
)

// HandlerStatus reports one handler's part in an apply.
type HandlerStatus struct {
	Handler string         `json:"handler"`
	Format  format.ID      `json:"format"`
	Outcome HandlerOutcome `json:"outcome"`
	Error   string         `json:"error,omitempty"`
	Paths   []string       `json:"paths,omitempty"`
}

// ApplicationResult is the full record of one apply operation.
type ApplicationResult struct {
	// OpID uniquely identifies the operation across logs and results.
	OpID string `json:"op_id"`

	// Theme is the schema name that was applied.
	Theme string `json:"theme"`

	// DryRun marks results from a rehearsal that mutated nothing.
	DryRun bool `json:"dry_run,omitempty"`

	// Transitions is the ordered list of states the pipeline passed
	// through, ending in the final state.
	Transitions []State `json:"transitions"`

	// BackupID is the snapshot taken before mutation, empty for dry runs
	// and runs aborted before the snapshot.
	BackupID string `json:"backup_id,omitempty"`

	// Handlers holds the per-handler outcomes.
	Handlers []HandlerStatus `json:"handlers"`

	// Violations carries soft validation findings that did not block the
	// apply.
	Violations []schema.Violation `json:"violations,omitempty"`

	// StartedAt and Duration time the operation.
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Final returns the terminal state, StateIdle when the pipeline never ran.
func (r *ApplicationResult) Final() State {
	if len(r.Transitions) == 0 {
		return StateIdle
	}
	return r.Transitions[len(r.Transitions)-1]
}

// Applied returns how many handlers completed successfully.
func (r *ApplicationResult) Applied() int {
	n := 0
	for _, h := range r.Handlers {
		if h.Outcome == HandlerApplied {
			n++
		}
	}
	return n
}

// Failed returns how many handlers failed.
func (r *ApplicationResult) Failed() int {
	n := 0
	for _, h := range r.Handlers {
		if h.Outcome == HandlerFailed {
			n++
		}
	}
	return n
}

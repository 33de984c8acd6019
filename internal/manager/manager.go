// Package manager orchestrates theme application: parse, validate, snapshot,
// apply through handlers, and commit or roll back. It owns the transaction;
// everything below it is either pure or undoable.
package manager

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/shadetool/shade/internal/backup"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/schema"
)

// Manager errors.
var (
	ErrNoHandlers     = errors.New("no handler is registered to apply the theme")
	ErrSchemaInvalid  = errors.New("schema has hard validation violations")
	ErrUnknownHandler = errors.New("unknown handler id")
)

// Config contains manager configuration.
type Config struct {
	// MaxHandlerFailures is how many handlers may fail before the whole
	// apply is rolled back. Default: 0, any failure rolls back.
	MaxHandlerFailures int

	// BackupRetention is how many backups are kept after a committed
	// apply. Default: 10.
	BackupRetention int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHandlerFailures: 0,
		BackupRetention:    10,
	}
}

// Manager drives the apply pipeline over a fixed set of handlers.
type Manager struct {
	config   Config
	registry *format.Registry
	store    *backup.Store
	handlers []Handler
	logger   zerolog.Logger
}

// New creates a manager.
func New(config Config, registry *format.Registry, store *backup.Store, logger zerolog.Logger) *Manager {
	if config.BackupRetention <= 0 {
		config.BackupRetention = DefaultConfig().BackupRetention
	}
	return &Manager{
		config:   config,
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// AddHandler registers a handler. Order is preserved in results.
func (m *Manager) AddHandler(h Handler) {
	m.handlers = append(m.handlers, h)
}

// Apply runs the full pipeline for an already-built schema. targets selects
// handlers by id; none selects all of them.
func (m *Manager) Apply(sch *schema.Schema, targets ...string) (*ApplicationResult, error) {
	res := m.newResult()
	m.transition(res, StateParsing)
	return m.run(res, sch, targets, false)
}

// ApplySource parses a source through the registry and applies the result.
// Parse failures abort before anything is touched.
func (m *Manager) ApplySource(src format.Source, targets ...string) (*ApplicationResult, error) {
	res := m.newResult()
	m.transition(res, StateParsing)

	sch, err := m.registry.Parse(src)
	if err != nil {
		m.logger.Error().Str("op", res.OpID).Err(err).Msg("parse failed")
		return res, err
	}
	return m.run(res, sch, targets, false)
}

// DryRun rehearses an apply: validate and render every selected handler, but
// take no snapshot and write nothing.
func (m *Manager) DryRun(sch *schema.Schema, targets ...string) (*ApplicationResult, error) {
	res := m.newResult()
	res.DryRun = true
	m.transition(res, StateParsing)
	return m.run(res, sch, targets, true)
}

// selectHandlers resolves a target id set against the registered handlers,
// preserving registration order. An empty set selects everything.
func (m *Manager) selectHandlers(targets []string) ([]Handler, error) {
	if len(targets) == 0 {
		return m.handlers, nil
	}
	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}
	selected := make([]Handler, 0, len(targets))
	for _, h := range m.handlers {
		if want[h.ID()] {
			selected = append(selected, h)
			delete(want, h.ID())
		}
	}
	for t := range want {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandler, t)
	}
	return selected, nil
}

// Restore reverts the target files to a backup under the store lock. An
// empty id restores the most recent backup.
func (m *Manager) Restore(id string) error {
	lock, err := m.store.Acquire()
	if err != nil {
		return err
	}
	defer lock.Release()
	return m.store.Restore(id)
}

// Prune trims the backup chain to the configured retention.
func (m *Manager) Prune() ([]string, error) {
	lock, err := m.store.Acquire()
	if err != nil {
		return nil, err
	}
	defer lock.Release()
	return m.store.Prune(m.config.BackupRetention)
}

func (m *Manager) newResult() *ApplicationResult {
	return &ApplicationResult{
		OpID:      uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

func (m *Manager) transition(res *ApplicationResult, next State) {
	res.Transitions = append(res.Transitions, next)
	m.logger.Debug().
		Str("op", res.OpID).
		Str("state", string(next)).
		Msg("pipeline state")
}

// rendered pairs a handler with its pre-rendered artifact. at indexes the
// handler's status in the result.
type rendered struct {
	handler  Handler
	artifact format.Artifact
	at       int
}

func (m *Manager) run(res *ApplicationResult, sch *schema.Schema, targets []string, dry bool) (*ApplicationResult, error) {
	defer func() { res.Duration = time.Since(res.StartedAt) }()
	res.Theme = sch.Name

	handlers, err := m.selectHandlers(targets)
	if err != nil {
		return res, err
	}

	m.transition(res, StateValidating)
	vr := schema.Validate(sch)
	res.Violations = vr.Violations
	if !vr.OK() {
		m.logger.Error().
			Str("op", res.OpID).
			Str("theme", sch.Name).
			Int("violations", len(vr.Violations)).
			Msg("schema rejected")
		return res, fmt.Errorf("%w: theme %s", ErrSchemaInvalid, sch.Name)
	}
	for _, v := range vr.ContrastViolations() {
		m.logger.Warn().Str("op", res.OpID).Str("theme", sch.Name).Msg(v.Message)
	}

	// Render everything up front. Rendering is pure, so all render failures
	// surface before any file is touched.
	var (
		runnable  []rendered
		renderErr error
	)
	res.Handlers = make([]HandlerStatus, 0, len(handlers))
	for _, h := range handlers {
		res.Handlers = append(res.Handlers, HandlerStatus{Handler: h.ID(), Format: h.Format()})
		at := len(res.Handlers) - 1

		if !h.Available() {
			res.Handlers[at].Outcome = HandlerSkipped
			m.logger.Info().Str("op", res.OpID).Str("handler", h.ID()).Msg("handler unavailable, skipping")
			continue
		}

		rd, ok := m.registry.Renderer(h.Format())
		if !ok {
			res.Handlers[at].Outcome = HandlerFailed
			res.Handlers[at].Error = fmt.Sprintf("no renderer for format %s", h.Format())
			renderErr = multierr.Append(renderErr, fmt.Errorf("handler %s: no renderer for format %s", h.ID(), h.Format()))
			continue
		}

		art, err := rd.Render(sch)
		if err != nil {
			res.Handlers[at].Outcome = HandlerFailed
			res.Handlers[at].Error = err.Error()
			renderErr = multierr.Append(renderErr, fmt.Errorf("handler %s: %w", h.ID(), err))
			continue
		}

		res.Handlers[at].Paths = h.TargetPaths(art)
		sort.Strings(res.Handlers[at].Paths)
		runnable = append(runnable, rendered{handler: h, artifact: art, at: at})
	}

	if res.Failed() > m.config.MaxHandlerFailures {
		return res, fmt.Errorf("rendering failed before any file was touched: %w", renderErr)
	}
	if len(runnable) == 0 {
		if len(res.Handlers) > 0 && res.Failed() == 0 {
			// Unavailable handlers are a normal skip, not a failure. With
			// nothing to write there is nothing to snapshot either.
			if !dry {
				m.transition(res, StateCommitted)
			}
			m.logger.Info().
				Str("op", res.OpID).
				Str("theme", sch.Name).
				Int("skipped", len(res.Handlers)).
				Msg("no handler available, nothing applied")
			return res, nil
		}
		return res, ErrNoHandlers
	}

	if dry {
		for _, r := range runnable {
			res.Handlers[r.at].Outcome = HandlerApplied
		}
		m.logger.Info().
			Str("op", res.OpID).
			Str("theme", sch.Name).
			Int("handlers", len(runnable)).
			Msg("dry run complete")
		return res, nil
	}

	m.transition(res, StateSnapshotting)
	lock, err := m.store.Acquire()
	if err != nil {
		return res, err
	}
	defer lock.Release()

	paths := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range runnable {
		for _, p := range res.Handlers[r.at].Paths {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	snap, err := m.store.Snapshot(sch.Name, "apply", paths)
	if err != nil {
		return res, err
	}
	res.BackupID = snap.ID

	m.transition(res, StateApplying)
	var applyErr error
	for _, r := range runnable {
		if err := r.handler.Apply(r.artifact); err != nil {
			res.Handlers[r.at].Outcome = HandlerFailed
			res.Handlers[r.at].Error = err.Error()
			applyErr = multierr.Append(applyErr, err)
			m.logger.Error().Str("op", res.OpID).Str("handler", r.handler.ID()).Err(err).Msg("handler failed")
			continue
		}
		res.Handlers[r.at].Outcome = HandlerApplied
	}

	if res.Failed() > m.config.MaxHandlerFailures {
		m.transition(res, StateRolledBack)
		if rbErr := m.store.Restore(snap.ID); rbErr != nil {
			return res, fmt.Errorf("apply failed and rollback to %s also failed: %w",
				snap.ID, multierr.Append(applyErr, rbErr))
		}
		m.logger.Warn().
			Str("op", res.OpID).
			Str("theme", sch.Name).
			Str("backup", snap.ID).
			Int("failed", res.Failed()).
			Msg("apply rolled back")
		return res, fmt.Errorf("apply rolled back to %s: %w", snap.ID, applyErr)
	}

	m.transition(res, StateCommitted)
	if _, err := m.store.Prune(m.config.BackupRetention); err != nil {
		// The theme is live; a failed prune only delays cleanup.
		m.logger.Warn().Str("op", res.OpID).Err(err).Msg("retention prune failed")
	}

	m.logger.Info().
		Str("op", res.OpID).
		Str("theme", sch.Name).
		Str("backup", snap.ID).
		Int("applied", res.Applied()).
		Msg("theme committed")
	return res, nil
}

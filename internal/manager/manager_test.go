package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shadetool/shade/internal/backup"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/format/dtokens"
	"github.com/shadetool/shade/internal/format/gtk"
	"github.com/shadetool/shade/internal/schema"
)

// fakeHandler lets tests force any combination of availability and failure.
type fakeHandler struct {
	id        string
	formatID  format.ID
	root      string
	available bool
	failApply bool
	applied   int
}

func (h *fakeHandler) ID() string        { return h.id }
func (h *fakeHandler) Format() format.ID { return h.formatID }
func (h *fakeHandler) Available() bool   { return h.available }

func (h *fakeHandler) TargetPaths(art format.Artifact) []string {
	paths := make([]string, 0, len(art))
	for rel := range art {
		paths = append(paths, filepath.Join(h.root, rel))
	}
	return paths
}

func (h *fakeHandler) Apply(art format.Artifact) error {
	if h.failApply {
		return fmt.Errorf("handler %s: disk on fire", h.id)
	}
	h.applied++
	for rel, data := range art {
		path := filepath.Join(h.root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

type testEnv struct {
	manager *Manager
	store   *backup.Store
	dir     string
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	reg := format.NewRegistry()
	reg.RegisterParser(gtk.NewParser())
	reg.RegisterParser(dtokens.NewParser())
	reg.RegisterRenderer(gtk.NewRenderer())
	reg.RegisterRenderer(dtokens.NewRenderer())

	store, err := backup.Open(filepath.Join(t.TempDir(), "backups"), zerolog.Nop())
	require.NoError(t, err)

	return &testEnv{
		manager: New(cfg, reg, store, zerolog.Nop()),
		store:   store,
		dir:     t.TempDir(),
	}
}

func TestApplyCommits(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	h := &fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true}
	env.manager.AddHandler(h)

	res, err := env.manager.Apply(schema.LightPreset())
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.Final())
	require.Equal(t, []State{StateParsing, StateValidating, StateSnapshotting, StateApplying, StateCommitted}, res.Transitions)
	require.Equal(t, 1, res.Applied())
	require.NotEmpty(t, res.OpID)
	require.NotEmpty(t, res.BackupID)
	require.Equal(t, 1, h.applied)

	// The target file exists and the snapshot recorded its pre-apply absence.
	_, statErr := os.Stat(filepath.Join(env.dir, "tokens.json"))
	require.NoError(t, statErr)

	b, err := env.store.Get(res.BackupID)
	require.NoError(t, err)
	require.Len(t, b.Files, 1)
	require.Empty(t, b.Files[0].Name)
}

func TestApplyRejectsInvalidSchema(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})

	sch := schema.New("hollow") // no mandatory roles bound
	res, err := env.manager.Apply(sch)
	require.ErrorIs(t, err, ErrSchemaInvalid)
	require.Equal(t, StateValidating, res.Final())
	require.NotEmpty(t, res.Violations)

	// Nothing was snapshotted or written.
	backups, err := env.store.List()
	require.NoError(t, err)
	require.Empty(t, backups)
}

func TestApplyRollsBackOnHandlerFailure(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	good := &fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true}
	bad := &fakeHandler{id: "gtk", formatID: format.FormatGTK, root: env.dir, available: true, failApply: true}
	env.manager.AddHandler(good)
	env.manager.AddHandler(bad)

	target := filepath.Join(env.dir, "tokens.json")
	require.NoError(t, os.WriteFile(target, []byte("pre-existing"), 0o644))

	res, err := env.manager.Apply(schema.DarkPreset())
	require.Error(t, err)
	require.Equal(t, StateRolledBack, res.Final())
	require.Equal(t, 1, res.Failed())

	// The good handler's write was reverted.
	data, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	require.Equal(t, "pre-existing", string(data))
}

func TestApplyToleratesFailuresWithinBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHandlerFailures = 1
	env := newTestEnv(t, cfg)
	good := &fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true}
	bad := &fakeHandler{id: "gtk", formatID: format.FormatGTK, root: env.dir, available: true, failApply: true}
	env.manager.AddHandler(good)
	env.manager.AddHandler(bad)

	res, err := env.manager.Apply(schema.LightPreset())
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.Final())
	require.Equal(t, 1, res.Applied())
	require.Equal(t, 1, res.Failed())
}

func TestApplySkipsUnavailableHandlers(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})
	env.manager.AddHandler(&fakeHandler{id: "qt", formatID: format.FormatQt, root: env.dir, available: false})

	res, err := env.manager.Apply(schema.LightPreset())
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.Final())
	require.Len(t, res.Handlers, 2)
	require.Equal(t, HandlerSkipped, res.Handlers[1].Outcome)
	require.Empty(t, res.Handlers[1].Error)
}

func TestApplyTargetSelection(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	tokens := &fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true}
	gtkH := &fakeHandler{id: "gtk", formatID: format.FormatGTK, root: env.dir, available: true}
	env.manager.AddHandler(tokens)
	env.manager.AddHandler(gtkH)

	res, err := env.manager.Apply(schema.LightPreset(), "tokens")
	require.NoError(t, err)
	require.Len(t, res.Handlers, 1)
	require.Equal(t, "tokens", res.Handlers[0].Handler)
	require.Equal(t, 0, gtkH.applied)

	_, err = env.manager.Apply(schema.LightPreset(), "kvantum")
	require.ErrorIs(t, err, ErrUnknownHandler)
}

func TestApplyAllSkippedCommitsWithoutSnapshot(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "qt", formatID: format.FormatQt, root: env.dir, available: false})

	res, err := env.manager.Apply(schema.LightPreset())
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.Final())
	require.Empty(t, res.BackupID)
	require.Equal(t, HandlerSkipped, res.Handlers[0].Outcome)

	backups, err := env.store.List()
	require.NoError(t, err)
	require.Empty(t, backups)
}

func TestApplyFailsWithoutRegisteredHandlers(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())

	_, err := env.manager.Apply(schema.LightPreset())
	require.ErrorIs(t, err, ErrNoHandlers)
}

func TestApplyMissingRendererAbortsBeforeMutation(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	// Qt renderer was never registered in the test registry.
	env.manager.AddHandler(&fakeHandler{id: "qt", formatID: format.FormatQt, root: env.dir, available: true})
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})

	res, err := env.manager.Apply(schema.LightPreset())
	require.Error(t, err)
	require.Equal(t, StateValidating, res.Final())

	// No snapshot, no writes.
	backups, listErr := env.store.List()
	require.NoError(t, listErr)
	require.Empty(t, backups)
	_, statErr := os.Stat(filepath.Join(env.dir, "tokens.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestApplySourceParseErrorAbortsBeforeMutation(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})

	src := format.Source{Path: "broken.json", Data: []byte(`{"not": "a token tree"`)}
	res, err := env.manager.ApplySource(src)
	require.Error(t, err)
	require.Equal(t, StateParsing, res.Final())

	backups, listErr := env.store.List()
	require.NoError(t, listErr)
	require.Empty(t, backups)
}

func TestDryRunTouchesNothing(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	h := &fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true}
	env.manager.AddHandler(h)

	res, err := env.manager.DryRun(schema.LightPreset())
	require.NoError(t, err)
	require.True(t, res.DryRun)
	require.Empty(t, res.BackupID)
	require.Equal(t, HandlerApplied, res.Handlers[0].Outcome)
	require.Equal(t, 0, h.applied)

	backups, err := env.store.List()
	require.NoError(t, err)
	require.Empty(t, backups)
}

func TestApplyFailsFastWhenStoreBusy(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})

	lock, err := env.store.Acquire()
	require.NoError(t, err)
	defer lock.Release()

	res, err := env.manager.Apply(schema.LightPreset())
	require.ErrorIs(t, err, backup.ErrStoreBusy)
	require.Equal(t, StateSnapshotting, res.Final())
}

func TestRestoreDelegatesUnderLock(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	env.manager.AddHandler(&fakeHandler{id: "tokens", formatID: format.FormatTokens, root: env.dir, available: true})

	_, err := env.manager.Apply(schema.LightPreset())
	require.NoError(t, err)

	target := filepath.Join(env.dir, "tokens.json")
	require.NoError(t, os.WriteFile(target, []byte("scribbled"), 0o644))

	require.NoError(t, env.manager.Restore(""))
	_, statErr := os.Stat(target)
	require.True(t, os.IsNotExist(statErr), "restore reverts to pre-apply absence")

	// Busy store propagates instead of queueing.
	lock, err := env.store.Acquire()
	require.NoError(t, err)
	defer lock.Release()
	require.ErrorIs(t, env.manager.Restore(""), backup.ErrStoreBusy)
}

func TestFileHandler(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandler("gtk", format.FormatGTK, dir)
	require.True(t, h.Available())
	require.Equal(t, "gtk", h.ID())

	art := format.Artifact{"gtk-3.0/gtk.css": []byte("/* theme */\n")}
	paths := h.TargetPaths(art)
	require.Equal(t, []string{filepath.Join(dir, "gtk-3.0/gtk.css")}, paths)

	require.NoError(t, h.Apply(art))
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Equal(t, "/* theme */\n", string(data))

	missing := NewFileHandler("gone", format.FormatGTK, filepath.Join(dir, "nope"))
	require.False(t, missing.Available())
}

func TestResultFinalEmpty(t *testing.T) {
	var res ApplicationResult
	require.Equal(t, StateIdle, res.Final())
}

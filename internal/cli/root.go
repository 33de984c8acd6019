// Package cli implements the shade command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shadetool/shade/internal/backup"
	"github.com/shadetool/shade/internal/config"
	"github.com/shadetool/shade/internal/format"
	"github.com/shadetool/shade/internal/format/dtokens"
	"github.com/shadetool/shade/internal/format/gtk"
	"github.com/shadetool/shade/internal/format/qt"
	"github.com/shadetool/shade/internal/library"
	"github.com/shadetool/shade/internal/logging"
	"github.com/shadetool/shade/internal/manager"
	"github.com/shadetool/shade/internal/schema"
)

var (
	flagDebug   bool
	flagLogJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "shade",
	Short: "Translate desktop themes between GTK, Qt and design tokens",
	Long: "Shade parses a theme from any supported format into a canonical color schema,\n" +
		"validates it, and applies it transactionally to the configured desktop targets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "emit logs as JSON lines")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles the wired services a command needs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *format.Registry
	store    *backup.Store
	library  *library.Library
	manager  *manager.Manager
}

// buildApp loads configuration and wires the pipeline. Handlers come from
// the handler config; disabled ones are simply not registered.
func buildApp() (*app, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Debug: flagDebug || cfg.Debug,
		JSON:  flagLogJSON || cfg.LogJSON,
	})

	registry := newRegistry()

	store, err := backup.Open(cfg.BackupDir, logger)
	if err != nil {
		return nil, err
	}

	mgr := manager.New(manager.Config{
		MaxHandlerFailures: cfg.MaxHandlerFailures,
		BackupRetention:    cfg.BackupRetention,
	}, registry, store, logger)

	for _, name := range []string{"gtk", "qt", "tokens"} {
		hc := cfg.Handler(name)
		if !hc.Enabled {
			continue
		}
		mgr.AddHandler(manager.NewFileHandler(name, handlerFormat(name), hc.Root))
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		store:    store,
		library:  library.New(cfg.ThemeDir),
		manager:  mgr,
	}, nil
}

func newRegistry() *format.Registry {
	registry := format.NewRegistry()
	registry.RegisterParser(gtk.NewParser())
	registry.RegisterParser(qt.NewParser())
	registry.RegisterParser(dtokens.NewParser())
	registry.RegisterRenderer(gtk.NewRenderer())
	registry.RegisterRenderer(qt.NewRenderer())
	registry.RegisterRenderer(dtokens.NewRenderer())
	return registry
}

func handlerFormat(name string) format.ID {
	switch name {
	case "gtk":
		return format.FormatGTK
	case "qt":
		return format.FormatQt
	default:
		return format.FormatTokens
	}
}

// resolveSchema turns a command argument into a schema: an existing path is
// parsed through the format registry, anything else is looked up in the
// theme library.
func (a *app) resolveSchema(arg string) (*schema.Schema, error) {
	if _, err := os.Stat(arg); err == nil {
		return a.registry.Parse(format.Source{Path: arg})
	}
	theme, err := a.library.Get(arg)
	if err != nil {
		return nil, err
	}
	return theme.Schema()
}

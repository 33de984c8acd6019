// Package logging builds the root zerolog logger shared by the CLI and the
// pipeline.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Debug lowers the level from info to debug.
	Debug bool

	// JSON emits structured JSON lines instead of the console format.
	JSON bool

	// Writer overrides the output, stderr when nil.
	Writer io.Writer
}

// New constructs the root logger. Logs go to stderr so command output on
// stdout stays machine-readable.
func New(opts Options) zerolog.Logger {
	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

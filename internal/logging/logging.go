// Package logging configures the process-wide zerolog logger.
//
// Diagnostic output always goes to stderr so it never mixes with
// NDJSON or CSV written to stdout by the CLI commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init creates the root logger. Verbose enables debug level; json
// switches from the human console writer to structured JSON lines.
func Init(verbose, json bool) zerolog.Logger {
	return initTo(os.Stderr, verbose, json)
}

func initTo(w io.Writer, verbose, json bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var out io.Writer = w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

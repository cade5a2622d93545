// Package logging builds the zerolog logger shared by eeroctl commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options selects where and how verbosely to log.
type Options struct {
	Out     io.Writer
	Debug   bool
	NoColor bool
}

// New returns a logger writing to Out (stderr by default). Terminals get the
// human console format; anything else gets JSON lines. The level is warn
// unless Debug is set.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	level := zerolog.WarnLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	if isTerminal(out) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor || os.Getenv("NO_COLOR") != "",
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

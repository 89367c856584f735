// Package logging provides the structured logger used across sudachigo for
// dictionary-load events. Per-call tokenization does not log by default;
// it is a hot path.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the package-level logger. Dictionary load uses it;
// tokenize/tokenizeSentences do not, by design.
var Log = newLogger()

func newLogger() zerolog.Logger {
	var w zerolog.ConsoleWriter
	if isTerminal(os.Stderr) {
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = os.Stderr
		})
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// WithComponent returns a child logger tagged with a component name, e.g.
// "dictionary", "tokenizer", "plugin".
func WithComponent(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}

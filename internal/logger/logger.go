package logger

import (
	"os"

	"golang.org/x/term"
)

type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// NopLogger discards everything. Library code defaults to it.
type NopLogger struct{}

func (NopLogger) Logf(format string, args ...interface{}) {}
func (NopLogger) Log(msg string)                          {}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// New returns a UI logger for terminals and a plain one otherwise, both on
// stderr. Verbose false yields a logger that drops progress messages.
func New(verbose bool) Logger {
	if !verbose {
		return NopLogger{}
	}
	if IsInteractive(os.Stderr) {
		return NewUILogger()
	}
	return &StdoutLogger{Out: os.Stderr}
}

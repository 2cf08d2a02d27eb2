package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StdoutLogger writes messages unadorned. Out defaults to stdout. It is safe
// for concurrent use; each message is written whole.
type StdoutLogger struct {
	Out io.Writer
	mu  sync.Mutex
}

func (l *StdoutLogger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *StdoutLogger) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out(), msg)
}

func (l *StdoutLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out(), msg)
}

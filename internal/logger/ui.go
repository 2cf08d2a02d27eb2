package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	prefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// UILogger prints styled progress lines for terminals. It writes to stderr
// so that machine-readable output on stdout stays intact.
type UILogger struct {
	mu  sync.Mutex
	out io.Writer
}

func NewUILogger() *UILogger {
	return &UILogger{out: os.Stderr}
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *UILogger) Log(msg string) {
	l.write(msg)
}

func (l *UILogger) write(msg string) {
	msg = strings.TrimSuffix(msg, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintf(l.out, "%s %s\n", prefixStyle.Render("›"), textStyle.Render(line))
	}
}

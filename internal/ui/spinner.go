package ui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getlawrence/nodediff/internal/logger"
)

// ErrCanceled is returned when the user interrupts a spinner.
var ErrCanceled = errors.New("operation canceled")

// RunSpinner shows a Bubble Tea spinner while action runs and returns the
// action's error. Off a terminal the action runs without any UI.
func RunSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !logger.IsInteractive(os.Stdout) {
		return action(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- action(ctx) }()

	m := newSpinnerModel(title, done)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	switch {
	case m.finished:
		return m.err
	case m.canceled:
		return ErrCanceled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrCanceled
}

type actionDoneMsg struct{ err error }

type spinnerModel struct {
	title    string
	spin     spinner.Model
	done     <-chan error
	finished bool
	canceled bool
	err      error
	style    lipgloss.Style
}

func newSpinnerModel(title string, done <-chan error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &spinnerModel{
		title: title,
		spin:  s,
		done:  done,
		style: lipgloss.NewStyle().Padding(0, 1),
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.wait)
}

func (m *spinnerModel) wait() tea.Msg {
	return actionDoneMsg{err: <-m.done}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.finished {
		if m.err != nil {
			return m.style.Render("✗ "+m.title+" ("+m.err.Error()+")") + "\n"
		}
		return m.style.Render("✓ "+m.title) + "\n"
	}
	if m.canceled {
		return m.style.Render("✗ "+m.title+" (canceled)") + "\n"
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}

package cli

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var errWatchAborted = errors.New("stopped waiting for the auto-reply")

type replyDoneMsg struct{ err error }

// replyWatchModel shows a spinner until wait returns.
type replyWatchModel struct {
	spinner spinner.Model
	wait    func() error
	done    bool
	err     error
}

func newReplyWatchModel(wait func() error) replyWatchModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))
	return replyWatchModel{spinner: s, wait: wait}
}

func (m replyWatchModel) Init() tea.Cmd {
	wait := m.wait
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return replyDoneMsg{err: wait()}
	})
}

func (m replyWatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			m.err = errWatchAborted
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m replyWatchModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + formatter.Dim("Waiting for the assistant... (esc to skip)") + "\n"
}

// watchReply blocks until the ticket's auto-reply ran, showing a spinner on
// interactive terminals.
func watchReply(ctx context.Context, app *App, ticketID string, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, app.replyTimeout())
	defer cancel()
	wait := func() error { return app.Tickets.WaitForAutoReply(ctx, ticketID) }

	if !app.interactive() {
		return wait()
	}
	final, err := tea.NewProgram(newReplyWatchModel(wait), tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	return final.(replyWatchModel).err
}

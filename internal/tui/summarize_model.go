package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const summarizingLabel = "Summarizing your notes..."

// summaryDoneMsg carries the result of the summarize call
type summaryDoneMsg struct {
	summary string
	err     error
}

// SummarizeModel shows a spinner while a single summarize call runs
type SummarizeModel struct {
	spinner spinner.Model
	shimmer Shimmer
	run     tea.Cmd
	cancel  context.CancelFunc

	summary string
	err     error
}

// NewSummarizeModel wraps fn; cancel is called when the user aborts
func NewSummarizeModel(ctx context.Context, fn func(context.Context) (string, error)) SummarizeModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return SummarizeModel{
		spinner: s,
		shimmer: NewShimmer(),
		cancel:  cancel,
		run: func() tea.Msg {
			summary, err := fn(ctx)
			return summaryDoneMsg{summary: summary, err: err}
		},
	}
}

func (m SummarizeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, shimmerTick(), m.run)
}

// Update handles messages
func (m SummarizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryDoneMsg:
		m.summary, m.err = msg.summary, msg.err
		m.cancel()
		return m, tea.Quit

	case shimmerTickMsg:
		m.shimmer = m.shimmer.Advance(len(summarizingLabel))
		return m, shimmerTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.err = context.Canceled
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the spinner line; results are printed after exit
func (m SummarizeModel) View() string {
	if m.summary != "" || m.err != nil {
		return ""
	}
	return "\n " + m.spinner.View() + " " + m.shimmer.Render(summarizingLabel) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render("   esc cancel") + "\n"
}

// Result returns the summary or the error that ended the call
func (m SummarizeModel) Result() (string, error) {
	if m.err == nil && m.summary == "" {
		return "", context.Canceled
	}
	return m.summary, m.err
}

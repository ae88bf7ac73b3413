package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/stats"
)

// HistoryModel browses completed sessions with live search
type HistoryModel struct {
	width  int
	height int

	all   []models.Session
	tasks []models.Task
	rows  []models.Session
	order stats.Order

	selected int
	page     int
	perPage  int

	search    textinput.Model
	searching bool
}

// NewHistoryModel creates a browser over sessions
func NewHistoryModel(sessions []models.Session, tasks []models.Task, query string, order stats.Order) HistoryModel {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search task, category or notes"
	in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	in.SetValue(query)

	m := HistoryModel{
		all:     sessions,
		tasks:   tasks,
		order:   order,
		search:  in,
		perPage: 10,
	}
	return m.refilter()
}

func (m HistoryModel) refilter() HistoryModel {
	m.rows = stats.FilterSessions(m.all, m.tasks, m.search.Value(), m.order)
	m.selected = 0
	m.page = 0
	return m
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header, search, pagination, help and borders
		m.perPage = max(msg.Height-10, 3)
		m.page = m.selected / m.perPage
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.selected - 1)
		case "down", "j":
			m = m.moveTo(m.selected + 1)
		case "left", "h":
			m = m.moveTo(m.selected - m.perPage)
		case "right", "l":
			m = m.moveTo(m.selected + m.perPage)
		case "o":
			if m.order == stats.NewestFirst {
				m.order = stats.OldestFirst
			} else {
				m.order = stats.NewestFirst
			}
			m = m.refilter()
		case "/":
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m HistoryModel) updateSearch(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m.refilter(), nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m.refilter(), cmd
}

func (m HistoryModel) moveTo(i int) HistoryModel {
	if len(m.rows) == 0 {
		return m
	}
	m.selected = min(max(i, 0), len(m.rows)-1)
	m.page = m.selected / m.perPage
	return m
}

// View renders the TUI
func (m HistoryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTable(leftWidth),
		" ",
		m.renderDetails(rightWidth),
	)

	bottom := m.renderHelpBar()
	if m.searching || m.search.Value() != "" {
		bottom = m.search.View() + "\n" + bottom
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", content, "", bottom)
}

func (m HistoryModel) renderTable(width int) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	b.WriteString(header.Render(fmt.Sprintf("%-12s  %-8s  %s", "Date", "Time", "Task")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).
			Render("No sessions match."))
	}

	start := m.page * m.perPage
	end := min(start+m.perPage, len(m.rows))
	nameWidth := max(width-30, 10)

	for i := start; i < end; i++ {
		s := m.rows[i]
		name := stats.DisplayName(s, m.tasks)
		if len([]rune(name)) > nameWidth {
			name = string([]rune(name)[:nameWidth-3]) + "..."
		}
		line := fmt.Sprintf("%-12s  %8s  %s",
			s.StartTime.Local().Format("Jan 02 15:04"), stats.FormatDuration(s.Duration), name)

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if i == m.selected {
			style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
			line = "▶ " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if pages := (len(m.rows) + m.perPage - 1) / m.perPage; pages > 1 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(fmt.Sprintf("page %d/%d", m.page+1, pages)))
	}

	return lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Render(b.String())
}

func (m HistoryModel) renderDetails(width int) string {
	box := lipgloss.NewStyle().
		Width(width-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain))

	if len(m.rows) == 0 {
		return box.Render("")
	}
	s := m.rows[m.selected]

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).
		Render(stats.DisplayName(s, m.tasks)))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Started:  ") + s.StartTime.Local().Format("Mon Jan 02 2006 15:04:05"))
	b.WriteString("\n")
	b.WriteString(label.Render("Ended:    ") + s.EndTime.Local().Format("15:04:05") +
		" (" + humanize.Time(s.EndTime) + ")")
	b.WriteString("\n")
	b.WriteString(label.Render("Duration: ") + stats.FormatDuration(s.Duration))
	b.WriteString("\n")
	b.WriteString(label.Render("ID:       ") + s.ID)
	b.WriteString("\n\n")

	notes := s.Notes
	if notes == "" {
		notes = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("no notes")
	}
	b.WriteString(notes)

	return box.Render(b.String())
}

func (m HistoryModel) renderHelpBar() string {
	order := "newest first"
	if m.order == stats.OldestFirst {
		order = "oldest first"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render(fmt.Sprintf("↑/↓ select · ←/→ page · / search · o order (%s) · q quit", order))
}

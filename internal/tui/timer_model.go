package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/stats"
	"github.com/balkashynov/studywise/internal/tracker"
)

// timerKeyMap defines the timer view bindings
type timerKeyMap struct {
	Stop key.Binding
	Exit key.Binding
	Quit key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Exit, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var timerKeys = timerKeyMap{
	Stop: key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "stop & save")),
	Exit: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "exit (keep running)")),
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// TimerModel is the full-screen view of the running session
type TimerModel struct {
	width  int
	height int

	task    models.Task
	active  models.ActiveSession
	elapsed int

	// Seconds already studied on this task today, excluding the live session
	todayBefore int
	sessionsN   int

	animation int
	keys      timerKeyMap
	help      help.Model

	stopping bool // s pressed, stop and save after the program exits
	exiting  bool // esc/q pressed, leave the session running
}

// timerTickMsg carries the elapsed seconds computed by the tick driver
type timerTickMsg struct {
	elapsed int
}

// animationTickMsg drives the header animation
type animationTickMsg struct{}

// NewTimerModel builds the view from the current store state
func NewTimerModel(store *tracker.Store) TimerModel {
	snap := store.Snapshot()
	task, _ := store.TaskByID(snap.Active.TaskID)

	var mine []models.Session
	for _, s := range snap.Sessions {
		if s.TaskID == task.ID {
			mine = append(mine, s)
		}
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true)

	return TimerModel{
		task:        task,
		active:      snap.Active,
		elapsed:     snap.Active.ElapsedSeconds,
		todayBefore: stats.TotalIn(mine, stats.Day(store.Now())),
		sessionsN:   len(mine),
		keys:        timerKeys,
		help:        h,
	}
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init starts the header animation; elapsed time arrives from the driver
func (m TimerModel) Init() tea.Cmd {
	return animationTick()
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = msg.elapsed
		return m, nil

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if !m.stopping && !m.exiting {
			return m, animationTick()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			m.stopping = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Exit), key.Matches(msg, m.keys.Quit):
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width).
		Render(m.help.View(m.keys))
	contentHeight := m.height - 2

	// Narrow terminals get the clock only
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderTaskPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderTimerPanel renders the clock panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
	var components []string

	anim := []string{"◐", "◓", "◑", "◒"}[m.animation]
	components = append(components, center.
		Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).
		Render(fmt.Sprintf("%s  STUDYING  %s", anim, anim)))

	name := m.task.Name
	if name == "" {
		name = models.UnknownTaskName
	}
	if w := width - 4; w > 3 && len([]rune(name)) > w {
		name = string([]rune(name)[:w-3]) + "..."
	}
	components = append(components, center.
		Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).
		Render(name))

	var clock []string
	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		clock = append(clock, center.Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	if m.active.SegmentStart != nil {
		info := fmt.Sprintf("Segment started at %s", m.active.SegmentStart.Local().Format("15:04:05"))
		if m.active.AccruedSeconds > 0 {
			info += fmt.Sprintf(" · %s carried over", stats.FormatDuration(m.active.AccruedSeconds))
		}
		components = append(components, center.
			Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render(info))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

var clockDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders the elapsed seconds as block digits
func renderBigClock(elapsed int) string {
	var lines [5]strings.Builder
	for _, r := range stats.FormatDuration(elapsed) {
		art, ok := clockDigits[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = style.Render(lines[i].String())
	}
	return strings.Join(out, "\n")
}

// renderTaskPanel renders the task details panel
func (m TimerModel) renderTaskPanel(width, height int) string {
	row := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)
	value := func(color, s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(row.Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).
		Render("s t u d y w i s e"))
	b.WriteString("\n\n")

	b.WriteString(row.Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", min(width-12, 40))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 12).
		Padding(0, 1).
		Render(m.task.Name))
	b.WriteString("\n\n")

	category, categoryColor := "none", ColorDisabledText
	if m.task.HasCategory() {
		category, categoryColor = m.task.Category, ColorAccentBright
	}
	b.WriteString(row.Render("📚 Category: " + value(categoryColor, category)))
	b.WriteString("\n")

	b.WriteString(row.Render("⏱  Today: " +
		value(ColorSuccess, stats.FormatDuration(m.todayBefore+m.elapsed))))
	b.WriteString("\n")

	b.WriteString(row.Render(fmt.Sprintf("🗂  Sessions: %s",
		value(ColorSecondaryText, fmt.Sprint(m.sessionsN)))))
	b.WriteString("\n")

	if !m.task.CreatedAt.IsZero() {
		b.WriteString(row.Render("📝 Created: " +
			value(ColorSecondaryText, m.task.CreatedAt.Local().Format("Jan 02, 2006"))))
	}

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

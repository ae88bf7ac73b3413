package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studywise/internal/parser"
)

const (
	fieldName = iota
	fieldCategory
	fieldCount
)

var fieldLabels = [fieldCount]string{"Task name", "Category"}

// TaskFormModel collects a task name and optional category
type TaskFormModel struct {
	title  string
	inputs [fieldCount]textinput.Model
	focus  int
	width  int

	shimmer       Shimmer
	validationErr string

	submitted bool
	cancelled bool
}

// TaskFormResult is what the user entered
type TaskFormResult struct {
	Name      string
	Category  string
	Cancelled bool
}

// NewTaskFormModel creates a form; name and category prefill the inputs
func NewTaskFormModel(title, name, category string) TaskFormModel {
	m := TaskFormModel{title: title, shimmer: NewShimmer()}

	for i := range m.inputs {
		in := textinput.New()
		in.Width = 50
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		m.inputs[i] = in
	}

	m.inputs[fieldName].Placeholder = "What are you studying? (required)"
	m.inputs[fieldName].CharLimit = parser.MaxNameLength
	m.inputs[fieldName].SetValue(name)
	m.inputs[fieldName].Focus()

	m.inputs[fieldCategory].Placeholder = "Subject, e.g. Math (Enter to skip)"
	m.inputs[fieldCategory].CharLimit = parser.MaxCategoryLength
	m.inputs[fieldCategory].SetValue(category)

	return m
}

// Result returns the trimmed values once the form has closed
func (m TaskFormModel) Result() TaskFormResult {
	return TaskFormResult{
		Name:      strings.TrimSpace(m.inputs[fieldName].Value()),
		Category:  strings.TrimSpace(m.inputs[fieldCategory].Value()),
		Cancelled: m.cancelled || !m.submitted,
	}
}

func (m TaskFormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, shimmerTick())
}

// Update handles messages
func (m TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer = m.shimmer.Advance(len(fieldLabels[m.focus]))
		return m, shimmerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := min(max(msg.Width-20, 30), 80)
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if m.focus == fieldCount-1 {
				return m.submit()
			}
			return m.move(1), nil

		case "tab", "down":
			return m.move(1), nil

		case "shift+tab", "up":
			return m.move(-1), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m TaskFormModel) move(delta int) TaskFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	m.shimmer = m.shimmer.Reset()
	return m
}

func (m TaskFormModel) submit() (TaskFormModel, tea.Cmd) {
	r := m.Result()
	if err := parser.ValidateTask(r.Name, r.Category); err != nil {
		m.validationErr = err.Error()
		var verr *parser.ValidationError
		if errors.Is(err, parser.ErrEmptyName) || (errors.As(err, &verr) && verr.Field == "name") {
			if m.focus != fieldName {
				m = m.move(fieldName - m.focus)
			}
		}
		return m, nil
	}
	m.validationErr = ""
	m.submitted = true
	return m, tea.Quit
}

// View renders the form
func (m TaskFormModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(m.title))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(fieldLabels[i])
		if i == m.focus {
			label = m.shimmer.Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).
			Render("✗ " + m.validationErr))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next/save · tab switch field · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

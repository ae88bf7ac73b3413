package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	shimmerSpeed      = 100 * time.Millisecond
	shimmerWidthRatio = 0.25
	shimmerCycleTicks = 18
	shimmerPauseTicks = 5
)

// shimmerTickMsg advances every shimmer in the running program
type shimmerTickMsg struct{}

func shimmerTick() tea.Cmd {
	return tea.Tick(shimmerSpeed, func(time.Time) tea.Msg { return shimmerTickMsg{} })
}

// Shimmer sweeps a highlight across a label, pausing between passes
type Shimmer struct {
	center    float64
	pause     int
	trueColor bool
}

// NewShimmer creates a shimmer positioned before the start of the text
func NewShimmer() Shimmer {
	return Shimmer{trueColor: os.Getenv("COLORTERM") == "truecolor"}
}

// Advance moves the highlight one tick across text of length n
func (s Shimmer) Advance(n int) Shimmer {
	if n <= 0 {
		return s
	}
	if s.pause > 0 {
		s.pause--
		if s.pause == 0 {
			s.center = -float64(n) * shimmerWidthRatio
		}
		return s
	}

	total := float64(n) * (1 + 2*shimmerWidthRatio)
	s.center += total / shimmerCycleTicks

	if s.center >= float64(n)*(1+shimmerWidthRatio) {
		s.pause = shimmerPauseTicks
	}
	return s
}

// Reset starts the sweep over
func (s Shimmer) Reset() Shimmer {
	s.center = 0
	s.pause = 0
	return s
}

// Render draws text with the highlight at its current position
func (s Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	if !s.trueColor {
		// 256-colour terminals get a flat highlight band
		width := max(1, int(shimmerWidthRatio*float64(len(runes))))
		start := int(s.center) - width/2
		hi := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		base := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

		var b strings.Builder
		for i, r := range runes {
			if i >= start && i < start+width {
				b.WriteString(hi.Render(string(r)))
			} else {
				b.WriteString(base.Render(string(r)))
			}
		}
		return b.String()
	}

	// Gaussian blend from #A9BDB6 to #E0FFF8
	baseR, baseG, baseB := 169.0, 189.0, 182.0
	hiR, hiG, hiB := 224.0, 255.0, 248.0
	sigma := math.Max(1, shimmerWidthRatio*float64(len(runes))/2)

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		color := fmt.Sprintf("#%02X%02X%02X",
			int(baseR+(hiR-baseR)*w), int(baseG+(hiG-baseG)*w), int(baseB+(hiB-baseB)*w))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}
	return b.String()
}

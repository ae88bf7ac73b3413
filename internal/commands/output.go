package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/stats"
)

// shortID is the prefix shown in listings; commands accept any unique prefix
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate cuts s to n runes with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func taskLabel(t models.Task) string {
	if t.HasCategory() {
		return fmt.Sprintf("%s [%s]", t.Name, t.Category)
	}
	return t.Name
}

// printStopped reports a finalized session
func printStopped(w io.Writer, s *models.Session) {
	fmt.Fprintf(w, "⏹️  Stopped studying %s\n", s.TaskName)
	fmt.Fprintf(w, "📊 Session duration: %s (session %s)\n", stats.FormatDuration(s.Duration), shortID(s.ID))
}

// formatHours renders seconds as "1h 05m", "12m" or "40s"
func formatHours(seconds int) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%dh %02dm", seconds/3600, seconds%3600/60)
	case seconds >= 60:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// bar draws a share of width cells
func bar(share float64, width int) string {
	n := int(share / 100 * float64(width))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// relTime is anchored at now so output follows the store clock
func relTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

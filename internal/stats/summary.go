package stats

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/balkashynov/studywise/internal/models"
)

// Summary holds total tracked seconds for the current day, week and month
type Summary struct {
	Daily   int
	Weekly  int
	Monthly int
}

// Window is a closed time interval
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End]
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// calendar computes windows with Monday as the first day of the week
func calendar(ref time.Time) *now.Now {
	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: ref.Location(),
	}
	return cfg.With(ref)
}

// Day returns the calendar day containing ref
func Day(ref time.Time) Window {
	c := calendar(ref)
	return Window{Start: c.BeginningOfDay(), End: c.EndOfDay()}
}

// Week returns the Monday-to-Sunday week containing ref
func Week(ref time.Time) Window {
	c := calendar(ref)
	return Window{Start: c.BeginningOfWeek(), End: c.EndOfWeek()}
}

// Month returns the calendar month containing ref
func Month(ref time.Time) Window {
	c := calendar(ref)
	return Window{Start: c.BeginningOfMonth(), End: c.EndOfMonth()}
}

// TotalIn sums the durations of sessions that ended inside w
func TotalIn(sessions []models.Session, w Window) int {
	total := 0
	for _, s := range sessions {
		if s.EndTime.IsZero() {
			continue
		}
		if w.Contains(s.EndTime) {
			total += s.Duration
		}
	}
	return total
}

// TimeSummary totals sessions ending today, this week and this month relative to ref
func TimeSummary(sessions []models.Session, ref time.Time) Summary {
	return Summary{
		Daily:   TotalIn(sessions, Day(ref)),
		Weekly:  TotalIn(sessions, Week(ref)),
		Monthly: TotalIn(sessions, Month(ref)),
	}
}

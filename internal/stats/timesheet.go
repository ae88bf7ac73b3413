package stats

import (
	"time"

	"github.com/balkashynov/studywise/internal/models"
)

// TimesheetRow is one task's seconds per weekday, Monday first
type TimesheetRow struct {
	Name  string
	Days  [7]int
	Total int
}

// Timesheet is the Monday-to-Sunday grid for the week containing ref
type Timesheet struct {
	Week   Window
	Rows   []TimesheetRow
	Totals [7]int
	Total  int
}

// weekdayIndex maps Monday to 0 and Sunday to 6
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeeklyTimesheet spreads sessions ending in ref's week across weekdays.
// Rows are keyed by display name and keep first-seen order.
func WeeklyTimesheet(sessions []models.Session, tasks []models.Task, ref time.Time) Timesheet {
	ts := Timesheet{Week: Week(ref)}
	loc := ref.Location()
	index := make(map[string]int)

	for _, s := range sessions {
		if s.EndTime.IsZero() || !ts.Week.Contains(s.EndTime) {
			continue
		}
		name := DisplayName(s, tasks)
		i, ok := index[name]
		if !ok {
			i = len(ts.Rows)
			index[name] = i
			ts.Rows = append(ts.Rows, TimesheetRow{Name: name})
		}

		day := weekdayIndex(s.EndTime.In(loc).Weekday())
		ts.Rows[i].Days[day] += s.Duration
		ts.Rows[i].Total += s.Duration
		ts.Totals[day] += s.Duration
		ts.Total += s.Duration
	}
	return ts
}

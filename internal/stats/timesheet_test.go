package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studywise/internal/models"
)

func TestWeeklyTimesheet(t *testing.T) {
	tasks := []models.Task{{ID: "t1", Name: "Calculus"}, {ID: "t2", Name: "Essay"}}
	monday := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 20, 0, 0, 0, time.UTC)

	at := func(taskID, name string, end time.Time, d int) models.Session {
		s := endingAt(end, d)
		s.TaskID, s.TaskName = taskID, name
		return s
	}
	sessions := []models.Session{
		at("t1", "Calculus", monday, 600),
		at("t2", "Essay", ref, 300),
		at("t1", "Calculus", ref, 120),
		at("t1", "Calculus", sunday, 60),
		at("t9", "Old task", ref, 30),
		at("t1", "Calculus", monday.AddDate(0, 0, -1), 999), // previous week
	}

	ts := WeeklyTimesheet(sessions, tasks, ref)

	require.Len(t, ts.Rows, 3)
	assert.Equal(t, "Calculus", ts.Rows[0].Name)
	assert.Equal(t, [7]int{600, 0, 120, 0, 0, 0, 60}, ts.Rows[0].Days)
	assert.Equal(t, 780, ts.Rows[0].Total)
	assert.Equal(t, "Essay", ts.Rows[1].Name)
	assert.Equal(t, "Old task", ts.Rows[2].Name)

	assert.Equal(t, [7]int{600, 0, 450, 0, 0, 0, 60}, ts.Totals)
	assert.Equal(t, 1110, ts.Total)
	assert.Equal(t, time.Monday, ts.Week.Start.Weekday())
}

func TestWeeklyTimesheet_Empty(t *testing.T) {
	ts := WeeklyTimesheet(nil, nil, ref)
	assert.Empty(t, ts.Rows)
	assert.Zero(t, ts.Total)
}

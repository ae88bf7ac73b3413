package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/studywise/internal/models"
)

func ids(sessions []models.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterSessions(t *testing.T) {
	tasks := []models.Task{
		{ID: "alg", Name: "Algebra", Category: "Math"},
		{ID: "eng", Name: "English"},
	}
	sessions := []models.Session{
		{ID: "1", TaskID: "alg", TaskName: "Algebra", StartTime: ref},
		{ID: "2", TaskID: "eng", TaskName: "English", StartTime: ref.Add(time.Hour), Notes: "Essay draft"},
		{ID: "3", TaskID: "gone", TaskName: "Latin", StartTime: ref.Add(-time.Hour)},
	}

	tests := []struct {
		name  string
		query string
		order Order
		want  []string
	}{
		{"all newest first", "", NewestFirst, []string{"2", "1", "3"}},
		{"all oldest first", "  ", OldestFirst, []string{"3", "1", "2"}},
		{"by category", "MATH", NewestFirst, []string{"1"}},
		{"by notes", "essay", NewestFirst, []string{"2"}},
		{"by recorded name of deleted task", "lat", NewestFirst, []string{"3"}},
		{"no match", "physics", NewestFirst, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSessions(sessions, tasks, tt.query, tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	assert.Equal(t, "1", sessions[0].ID, "input order untouched")
}

func TestFilterSessions_UsesLiveTaskName(t *testing.T) {
	tasks := []models.Task{{ID: "a", Name: "Calculus"}}
	sessions := []models.Session{{ID: "1", TaskID: "a", TaskName: "Old name"}}

	assert.Len(t, FilterSessions(sessions, tasks, "calc", NewestFirst), 1)
	assert.Empty(t, FilterSessions(sessions, tasks, "old", NewestFirst))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{45296, "12:34:56"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

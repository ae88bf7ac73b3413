package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/balkashynov/studywise/internal/models"
)

// Order controls how session history is sorted
type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// FilterSessions returns sessions whose task name, notes or task category
// contain query (case-insensitive), sorted by start time. An empty query
// matches everything. The input slice is not modified.
func FilterSessions(sessions []models.Session, tasks []models.Task, query string, order Order) []models.Session {
	byID := taskIndex(tasks)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if query == "" || matches(s, byID, query) {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == OldestFirst {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

func matches(s models.Session, byID map[string]models.Task, query string) bool {
	name := s.TaskName
	task, ok := byID[s.TaskID]
	if ok {
		name = task.Name
	}
	if strings.Contains(strings.ToLower(name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Notes), query) {
		return true
	}
	return ok && strings.Contains(strings.ToLower(task.Category), query)
}

// FormatDuration renders seconds as HH:MM:SS, or MM:SS under an hour
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := totalSeconds % 3600 / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

package stats

import (
	"sort"

	"github.com/balkashynov/studywise/internal/models"
)

// Subject is the aggregated time for one category, or for one task without a category
type Subject struct {
	Name         string
	TotalTime    int
	TaskCount    int
	SessionCount int
	IsCategory   bool
}

// TaskTime is the aggregated time for one task label
type TaskTime struct {
	Name      string
	Category  string
	TotalTime int
}

func taskIndex(tasks []models.Task) map[string]models.Task {
	idx := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// DisplayName returns the live name of the session's task, falling back to
// the name recorded on the session when the task is gone
func DisplayName(s models.Session, tasks []models.Task) string {
	for _, t := range tasks {
		if t.ID == s.TaskID {
			return t.Name
		}
	}
	return s.TaskName
}

// SubjectBreakdown groups sessions by the task's category, else the task's
// name, else the session's recorded task name. Groups are ordered by total
// time, largest first; ties keep discovery order.
func SubjectBreakdown(sessions []models.Session, tasks []models.Task) []Subject {
	byID := taskIndex(tasks)

	type group struct {
		subject Subject
		taskIDs map[string]struct{}
	}
	var order []string
	groups := make(map[string]*group)

	for _, s := range sessions {
		name, isCategory := s.TaskName, false
		if task, ok := byID[s.TaskID]; ok {
			name = task.Name
			if task.HasCategory() {
				name, isCategory = task.Category, true
			}
		}

		g, ok := groups[name]
		if !ok {
			g = &group{
				subject: Subject{Name: name, IsCategory: isCategory},
				taskIDs: make(map[string]struct{}),
			}
			groups[name] = g
			order = append(order, name)
		}
		g.subject.TotalTime += s.Duration
		g.subject.SessionCount++
		g.taskIDs[s.TaskID] = struct{}{}
	}

	out := make([]Subject, 0, len(order))
	for _, name := range order {
		g := groups[name]
		g.subject.TaskCount = len(g.taskIDs)
		out = append(out, g.subject)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalTime > out[j].TotalTime
	})
	return out
}

// TaskBreakdown groups sessions per task label ("category: name" when the
// task has a category), ordered by total time, largest first
func TaskBreakdown(sessions []models.Session, tasks []models.Task) []TaskTime {
	byID := taskIndex(tasks)

	var order []string
	groups := make(map[string]*TaskTime)
	for _, s := range sessions {
		name, category := s.TaskName, ""
		if task, ok := byID[s.TaskID]; ok {
			name, category = task.Name, task.Category
		}
		key := name
		if category != "" {
			key = category + ": " + name
		}

		if g, ok := groups[key]; ok {
			g.TotalTime += s.Duration
			continue
		}
		groups[key] = &TaskTime{Name: key, Category: category, TotalTime: s.Duration}
		order = append(order, key)
	}

	out := make([]TaskTime, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalTime > out[j].TotalTime
	})
	return out
}

// Total sums the time of all subjects
func Total(subjects []Subject) int {
	total := 0
	for _, s := range subjects {
		total += s.TotalTime
	}
	return total
}

// Share returns part as a percentage of total, or 0 when total is 0
func Share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

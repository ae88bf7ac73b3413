package tracker

import (
	"slices"
	"time"

	"github.com/balkashynov/studywise/internal/models"
)

// State is the complete tracker state: tasks, finalized sessions and the active timer
type State struct {
	Tasks    []models.Task
	Sessions []models.Session
	Active   models.ActiveSession
}

// Event is an input to Transition
type Event interface {
	event()
}

// Start begins timing TaskID under a new session id, finalizing any running session first
type Start struct {
	TaskID    string
	SessionID string
}

// Stop finalizes the running session, if any
type Stop struct{}

func (Start) event() {}
func (Stop) event()  {}

// Clone returns a deep copy so callers cannot alias store-owned slices
func (s State) Clone() State {
	out := State{
		Tasks:    slices.Clone(s.Tasks),
		Sessions: slices.Clone(s.Sessions),
		Active:   s.Active,
	}
	if s.Active.SegmentStart != nil {
		start := *s.Active.SegmentStart
		out.Active.SegmentStart = &start
	}
	return out
}

func (s State) taskByID(id string) (models.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Transition applies ev to st at time now. It never mutates st. The second
// result is the session finalized by the transition, or nil.
func Transition(st State, ev Event, now time.Time) (State, *models.Session) {
	switch ev := ev.(type) {
	case Start:
		// Unknown task: no state change, nothing finalized.
		if _, ok := st.taskByID(ev.TaskID); !ok {
			return st, nil
		}
		next, emitted := stop(st, now)
		start := now
		next.Active = models.ActiveSession{
			ID:           ev.SessionID,
			TaskID:       ev.TaskID,
			SegmentStart: &start,
		}
		return next, emitted
	case Stop:
		return stop(st, now)
	}
	return st, nil
}

func stop(st State, now time.Time) (State, *models.Session) {
	active := st.Active
	if !active.IsRunning() {
		return st, nil
	}

	segment := wholeSeconds(now.Sub(*active.SegmentStart))
	name := models.UnknownTaskName
	if task, ok := st.taskByID(active.TaskID); ok {
		name = task.Name
	}

	session := models.Session{
		ID:        active.ID,
		TaskID:    active.TaskID,
		TaskName:  name,
		StartTime: active.SegmentStart.Add(-time.Duration(active.AccruedSeconds) * time.Second),
		EndTime:   now,
		Duration:  active.AccruedSeconds + segment,
	}

	next := State{
		Tasks:    st.Tasks,
		Sessions: append(slices.Clone(st.Sessions), session),
	}
	return next, &session
}

// Advance returns the live elapsed seconds of active at now: seconds accrued
// by earlier segments plus the whole seconds of the current segment.
func Advance(active models.ActiveSession, now time.Time) int {
	if !active.IsRunning() {
		return 0
	}
	return active.AccruedSeconds + wholeSeconds(now.Sub(*active.SegmentStart))
}

// Reanchor closes the current segment at now and opens a new one. Whole
// seconds move into AccruedSeconds and SegmentStart advances by exactly that
// amount, so the sub-second remainder carries over and no time is lost.
func Reanchor(active models.ActiveSession, now time.Time) models.ActiveSession {
	if !active.IsRunning() {
		return models.ActiveSession{}
	}
	delta := wholeSeconds(now.Sub(*active.SegmentStart))
	start := active.SegmentStart.Add(time.Duration(delta) * time.Second)

	active.SegmentStart = &start
	active.AccruedSeconds += delta
	active.ElapsedSeconds = active.AccruedSeconds
	return active
}

// wholeSeconds floors d to seconds; negative durations (clock skew) count as zero
func wholeSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

package models

import (
	"time"
)

// UnknownTaskName is recorded when a session's task can no longer be resolved
const UnknownTaskName = "Unknown Task"

// Session is a finalized record of one completed timer run
type Session struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	TaskName  string    `json:"taskName"` // denormalized copy, survives task deletion
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"` // seconds
	Notes     string    `json:"notes,omitempty"`
}

// ActiveSession is the in-progress timer. The zero value is idle.
type ActiveSession struct {
	ID           string     `json:"id,omitempty"`
	TaskID       string     `json:"taskId,omitempty"`
	SegmentStart *time.Time `json:"segmentStart,omitempty"`

	// AccruedSeconds holds whole seconds from earlier segments of the same session.
	AccruedSeconds int `json:"accruedSeconds"`
	// ElapsedSeconds is the live display value, rewritten on every tick.
	ElapsedSeconds int `json:"elapsedSeconds"`
}

// IsRunning reports whether a timer is active
func (a ActiveSession) IsRunning() bool {
	return a.ID != "" && a.TaskID != "" && a.SegmentStart != nil
}

// IsIdle reports whether no timer is active and no field is partially set
func (a ActiveSession) IsIdle() bool {
	return a.ID == "" && a.TaskID == "" && a.SegmentStart == nil &&
		a.AccruedSeconds == 0 && a.ElapsedSeconds == 0
}

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/tracker"
)

// DefaultRecordName is the name of the record holding the tracker state
const DefaultRecordName = "studywise-storage"

// timeLayout matches browser ISO strings: UTC with millisecond precision
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is a named document stored as text
type Record struct {
	Name      string `gorm:"primaryKey"`
	Payload   string `gorm:"not null"`
	UpdatedAt time.Time
}

// persisted layout, with every timestamp kept as text
type persistedState struct {
	Tasks         []persistedTask    `json:"tasks"`
	Sessions      []persistedSession `json:"sessions"`
	ActiveSession persistedActive    `json:"activeSession"`
}

type persistedTask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type persistedSession struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	TaskName  string `json:"taskName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

type persistedActive struct {
	ID             string  `json:"id,omitempty"`
	TaskID         string  `json:"taskId,omitempty"`
	SegmentStart   *string `json:"segmentStart,omitempty"`
	AccruedSeconds int     `json:"accruedSeconds"`
	ElapsedSeconds int     `json:"elapsedSeconds"`
}

// SnapshotStore keeps the whole tracker state in a single named record
type SnapshotStore struct {
	db   *gorm.DB
	name string
	log  *slog.Logger
}

// NewSnapshotStore creates a store writing to the record called name
func NewSnapshotStore(db *gorm.DB, name string, log *slog.Logger) *SnapshotStore {
	if name == "" {
		name = DefaultRecordName
	}
	if log == nil {
		log = slog.Default()
	}
	return &SnapshotStore{db: db, name: name, log: log}
}

// Load reads and rehydrates the state. A missing or unreadable record yields
// an empty, idle state.
func (s *SnapshotStore) Load(ctx context.Context) (tracker.State, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("no saved state, starting empty", slog.String("record", s.name))
		return tracker.State{}, nil
	}
	if err != nil {
		return tracker.State{}, fmt.Errorf("read record %q: %w", s.name, err)
	}

	st, err := DecodeState([]byte(rec.Payload))
	if err != nil {
		s.log.Warn("saved state is unreadable, starting empty",
			slog.String("record", s.name),
			slog.String("error", err.Error()))
		return tracker.State{}, nil
	}
	return st, nil
}

// Save writes the full state, replacing the previous record
func (s *SnapshotStore) Save(ctx context.Context, st tracker.State) error {
	payload, err := EncodeState(st)
	if err != nil {
		return err
	}

	rec := Record{Name: s.name, Payload: string(payload)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write record %q: %w", s.name, err)
	}
	return nil
}

// EncodeState serializes st with text timestamps
func EncodeState(st tracker.State) ([]byte, error) {
	out := persistedState{
		Tasks:    make([]persistedTask, 0, len(st.Tasks)),
		Sessions: make([]persistedSession, 0, len(st.Sessions)),
	}
	for _, t := range st.Tasks {
		out.Tasks = append(out.Tasks, persistedTask{
			ID:        t.ID,
			Name:      t.Name,
			Category:  t.Category,
			CreatedAt: formatTime(t.CreatedAt),
		})
	}
	for _, x := range st.Sessions {
		ps := persistedSession{
			ID:        x.ID,
			TaskID:    x.TaskID,
			TaskName:  x.TaskName,
			StartTime: formatTime(x.StartTime),
			Duration:  x.Duration,
			Notes:     x.Notes,
		}
		if !x.EndTime.IsZero() {
			ps.EndTime = formatTime(x.EndTime)
		}
		out.Sessions = append(out.Sessions, ps)
	}

	a := st.Active
	out.ActiveSession = persistedActive{
		ID:             a.ID,
		TaskID:         a.TaskID,
		AccruedSeconds: a.AccruedSeconds,
		ElapsedSeconds: a.ElapsedSeconds,
	}
	if a.SegmentStart != nil {
		start := formatTime(*a.SegmentStart)
		out.ActiveSession.SegmentStart = &start
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return payload, nil
}

// DecodeState parses a payload and rehydrates every timestamp
func DecodeState(payload []byte) (tracker.State, error) {
	var in persistedState
	if err := json.Unmarshal(payload, &in); err != nil {
		return tracker.State{}, fmt.Errorf("decode state: %w", err)
	}
	return rehydrate(in)
}

// rehydrate converts the text timestamps back to time.Time
func rehydrate(in persistedState) (tracker.State, error) {
	var st tracker.State

	for _, t := range in.Tasks {
		createdAt, err := parseTime(t.CreatedAt)
		if err != nil {
			return tracker.State{}, fmt.Errorf("task %s createdAt: %w", t.ID, err)
		}
		st.Tasks = append(st.Tasks, models.Task{
			ID:        t.ID,
			Name:      t.Name,
			Category:  models.NormalizeCategory(t.Category),
			CreatedAt: createdAt,
		})
	}

	for _, x := range in.Sessions {
		start, err := parseTime(x.StartTime)
		if err != nil {
			return tracker.State{}, fmt.Errorf("session %s startTime: %w", x.ID, err)
		}
		var end time.Time
		if x.EndTime != "" {
			if end, err = parseTime(x.EndTime); err != nil {
				return tracker.State{}, fmt.Errorf("session %s endTime: %w", x.ID, err)
			}
		}
		st.Sessions = append(st.Sessions, models.Session{
			ID:        x.ID,
			TaskID:    x.TaskID,
			TaskName:  x.TaskName,
			StartTime: start,
			EndTime:   end,
			Duration:  x.Duration,
			Notes:     x.Notes,
		})
	}

	a := in.ActiveSession
	st.Active = models.ActiveSession{
		ID:             a.ID,
		TaskID:         a.TaskID,
		AccruedSeconds: a.AccruedSeconds,
		ElapsedSeconds: a.ElapsedSeconds,
	}
	if a.SegmentStart != nil {
		start, err := parseTime(*a.SegmentStart)
		if err != nil {
			return tracker.State{}, fmt.Errorf("active segmentStart: %w", err)
		}
		st.Active.SegmentStart = &start
	}

	return st, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/balkashynov/studywise/internal/models"
)

var (
	// ErrNotFound is returned by the Resolve helpers when nothing matches
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an id prefix matches more than one record
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Storage persists the full tracker state
type Storage interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
}

// Store owns tasks, sessions and the active timer. Every mutation is written
// through to Storage before it becomes visible; a failed write leaves the
// in-memory state untouched.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
	clock   clockwork.Clock
	log     *slog.Logger
	newID   func() string

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDGenerator overrides uuid generation for task and session ids
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open loads state from storage and rehydrates it. A running timer is
// re-anchored at the current time and its elapsed value recomputed eagerly,
// so readers never see a stale value before the first tick.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		clock:   clockwork.NewRealClock(),
		log:     slog.Default(),
		newID:   uuid.NewString,
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	if st.Active.IsRunning() {
		st.Active = Reanchor(st.Active, s.clock.Now())
		s.log.Debug("resumed active session",
			slog.String("session_id", st.Active.ID),
			slog.String("task_id", st.Active.TaskID),
			slog.Int("elapsed", st.Active.ElapsedSeconds))
	} else if !st.Active.IsIdle() {
		s.log.Warn("discarding partial active session", slog.String("session_id", st.Active.ID))
		st.Active = models.ActiveSession{}
	}
	s.state = st

	return s, nil
}

// commit persists next and makes it current. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next State) error {
	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	s.state = next
	return nil
}

// AddTask creates a task. The name is expected to be validated by the caller.
func (s *Store) AddTask(ctx context.Context, name, category string) (models.Task, error) {
	s.mu.Lock()
	task := models.Task{
		ID:        s.newID(),
		Name:      name,
		Category:  models.NormalizeCategory(category),
		CreatedAt: s.clock.Now(),
	}
	next := s.state.Clone()
	next.Tasks = append(next.Tasks, task)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return models.Task{}, err
	}

	s.log.Debug("task added", slog.String("task_id", task.ID), slog.String("name", task.Name))
	s.notify()
	return task, nil
}

// EditTask renames a task and optionally changes its category. A nil category
// keeps the current one, a blank one clears it. The new name is copied into
// every session recorded for the task. Unknown ids are ignored.
func (s *Store) EditTask(ctx context.Context, id, newName string, newCategory *string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.state.Tasks, func(t models.Task) bool { return t.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.state.Clone()
	next.Tasks[idx].Name = newName
	if newCategory != nil {
		next.Tasks[idx].Category = models.NormalizeCategory(*newCategory)
	}
	renamed := 0
	for i := range next.Sessions {
		if next.Sessions[i].TaskID == id {
			next.Sessions[i].TaskName = newName
			renamed++
		}
	}
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Debug("task edited", slog.String("task_id", id), slog.Int("sessions_renamed", renamed))
	s.notify()
	return nil
}

// DeleteTask removes a task. If it is being timed the session is finalized
// first and returned. Sessions of the task are kept.
func (s *Store) DeleteTask(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	if _, ok := s.state.taskByID(id); !ok {
		s.mu.Unlock()
		return nil, nil
	}

	next := s.state.Clone()
	var stopped *models.Session
	if next.Active.TaskID == id {
		next, stopped = Transition(next, Stop{}, s.clock.Now())
	}
	next.Tasks = slices.DeleteFunc(slices.Clone(next.Tasks), func(t models.Task) bool { return t.ID == id })
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Debug("task deleted", slog.String("task_id", id), slog.Bool("stopped_timer", stopped != nil))
	s.notify()
	return stopped, nil
}

// StartTimer starts timing taskID. A running session is finalized first and
// returned. Unknown tasks leave the state unchanged.
func (s *Store) StartTimer(ctx context.Context, taskID string) (*models.Session, error) {
	s.mu.Lock()
	if _, ok := s.state.taskByID(taskID); !ok {
		s.mu.Unlock()
		return nil, nil
	}

	next, stopped := Transition(s.state.Clone(), Start{TaskID: taskID, SessionID: s.newID()}, s.clock.Now())
	err := s.commit(ctx, next)
	sessionID := next.Active.ID
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Debug("timer started", slog.String("task_id", taskID), slog.String("session_id", sessionID))
	s.notify()
	return stopped, nil
}

// StopTimer finalizes the running session and returns it, or nil when idle
func (s *Store) StopTimer(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	if !s.state.Active.IsRunning() {
		s.mu.Unlock()
		return nil, nil
	}

	next, stopped := Transition(s.state.Clone(), Stop{}, s.clock.Now())
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Debug("timer stopped",
		slog.String("session_id", stopped.ID),
		slog.Int("duration", stopped.Duration))
	s.notify()
	return stopped, nil
}

// Tick recomputes the live elapsed seconds of the running timer. It does not
// touch storage: the value is derived and recomputed on every load.
func (s *Store) Tick() (elapsed int, running bool) {
	s.mu.Lock()
	if !s.state.Active.IsRunning() {
		s.mu.Unlock()
		return 0, false
	}
	elapsed = Advance(s.state.Active, s.clock.Now())
	s.state.Active.ElapsedSeconds = elapsed
	s.mu.Unlock()

	s.notify()
	return elapsed, true
}

// AddSessionNote replaces the notes of a session. Unknown ids are ignored.
func (s *Store) AddSessionNote(ctx context.Context, sessionID, notes string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.state.Sessions, func(x models.Session) bool { return x.ID == sessionID })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.state.Clone()
	next.Sessions[idx].Notes = notes
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// DeleteSession removes a session from the log
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	if !slices.ContainsFunc(s.state.Sessions, func(x models.Session) bool { return x.ID == sessionID }) {
		s.mu.Unlock()
		return nil
	}

	next := s.state.Clone()
	next.Sessions = slices.DeleteFunc(next.Sessions, func(x models.Session) bool { return x.ID == sessionID })
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Debug("session deleted", slog.String("session_id", sessionID))
	s.notify()
	return nil
}

// TaskByID looks up a task
func (s *Store) TaskByID(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.taskByID(id)
}

// Tasks returns a copy of the task list
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Tasks)
}

// Sessions returns a copy of the session log
func (s *Store) Sessions() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Sessions)
}

// Active returns the active timer state
func (s *Store) Active() models.ActiveSession {
	return s.Snapshot().Active
}

// Snapshot returns a copy of the whole state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// ResolveTask finds a task by exact id or unique id prefix
func (s *Store) ResolveTask(ref string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolve(s.state.Tasks, ref, func(t models.Task) string { return t.ID })
}

// ResolveSession finds a session by exact id or unique id prefix
func (s *Store) ResolveSession(ref string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolve(s.state.Sessions, ref, func(x models.Session) string { return x.ID })
}

func resolve[T any](items []T, ref string, id func(T) string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, ErrNotFound
	}

	var match *T
	for i := range items {
		itemID := id(items[i])
		if itemID == ref {
			return items[i], nil
		}
		if strings.HasPrefix(itemID, ref) {
			if match != nil {
				return zero, fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
			}
			match = &items[i]
		}
	}
	if match == nil {
		return zero, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return *match, nil
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	if len(s.subs) == 0 {
		s.subMu.Unlock()
		return
	}
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	snapshot := s.Snapshot()
	for _, fn := range fns {
		fn(snapshot)
	}
}

package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/stats"
	"github.com/balkashynov/studywise/internal/tracker"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type memStorage struct {
	mu    sync.Mutex
	state tracker.State
}

func (m *memStorage) Load(context.Context) (tracker.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), nil
}

func (m *memStorage) Save(_ context.Context, st tracker.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st.Clone()
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runningStore(t *testing.T) (*tracker.Store, *clockwork.FakeClock) {
	t.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(t0)
	store, err := tracker.Open(ctx, &memStorage{}, tracker.WithClock(clock))
	require.NoError(t, err)

	task, err := store.AddTask(ctx, "Algebra", "Math")
	require.NoError(t, err)
	_, err = store.StartTimer(ctx, task.ID)
	require.NoError(t, err)
	return store, clock
}

func TestTimerModel_TicksAndKeys(t *testing.T) {
	store, clock := runningStore(t)
	clock.Advance(30 * time.Second)
	store.Tick()

	m := NewTimerModel(store)
	assert.Equal(t, "Algebra", m.task.Name)
	assert.Equal(t, 30, m.elapsed)

	next, _ := m.Update(timerTickMsg{elapsed: 65})
	m = next.(TimerModel)
	assert.Equal(t, 65, m.elapsed)

	next, cmd := m.Update(runes("s"))
	stopped := next.(TimerModel)
	assert.True(t, stopped.stopping)
	assert.False(t, stopped.exiting)
	require.NotNil(t, cmd)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	left := next.(TimerModel)
	assert.True(t, left.exiting)
	assert.False(t, left.stopping)
	require.NotNil(t, cmd)
}

func TestTimerModel_View(t *testing.T) {
	store, _ := runningStore(t)
	m := NewTimerModel(store)

	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := next.(TimerModel).View()

	assert.Contains(t, view, "Algebra")
	assert.Contains(t, view, "Math")
	assert.Contains(t, view, "stop & save")
}

func TestRenderBigClock(t *testing.T) {
	lines := strings.Split(renderBigClock(3725), "\n")
	require.Len(t, lines, 5)

	short := strings.Split(renderBigClock(65), "\n")
	require.Len(t, short, 5)
	// 01:02:05 has three more glyphs than 01:05
	assert.Greater(t, len([]rune(lines[0])), len([]rune(short[0])))
}

func TestTaskFormModel_RequiresName(t *testing.T) {
	m := NewTaskFormModel("New task", "", "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(TaskFormModel)
	assert.Equal(t, fieldCategory, m.focus)

	next, _ = m.Update(runes("Physics"))
	m = next.(TaskFormModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(TaskFormModel)
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.validationErr)
	assert.Equal(t, fieldName, m.focus)

	next, _ = m.Update(runes("Optics lab"))
	m = next.(TaskFormModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(TaskFormModel)
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(TaskFormModel)

	require.NotNil(t, cmd)
	assert.Equal(t, TaskFormResult{Name: "Optics lab", Category: "Physics"}, m.Result())
}

func TestTaskFormModel_Prefilled(t *testing.T) {
	m := NewTaskFormModel("Edit task", "Essay", "English")
	assert.Equal(t, TaskFormResult{Name: "Essay", Category: "English", Cancelled: true}, m.Result())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(TaskFormModel).Result().Cancelled)
}

func historyFixture() ([]models.Session, []models.Task) {
	tasks := []models.Task{
		{ID: "t1", Name: "Calculus", Category: "Math"},
		{ID: "t2", Name: "Essay", Category: "English"},
	}
	sessions := []models.Session{
		{ID: "s1", TaskID: "t1", TaskName: "Calculus", StartTime: t0, EndTime: t0.Add(time.Hour), Duration: 3600},
		{ID: "s2", TaskID: "t2", TaskName: "Essay", StartTime: t0.Add(2 * time.Hour), EndTime: t0.Add(3 * time.Hour), Duration: 3600, Notes: "thesis outline"},
		{ID: "s3", TaskID: "t1", TaskName: "Calculus", StartTime: t0.Add(4 * time.Hour), EndTime: t0.Add(5 * time.Hour), Duration: 3600},
	}
	return sessions, tasks
}

func rowIDs(m HistoryModel) []string {
	var out []string
	for _, s := range m.rows {
		out = append(out, s.ID)
	}
	return out
}

func TestHistoryModel_SearchAndOrder(t *testing.T) {
	sessions, tasks := historyFixture()
	m := NewHistoryModel(sessions, tasks, "", stats.NewestFirst)
	assert.Equal(t, []string{"s3", "s2", "s1"}, rowIDs(m))

	next, _ := m.Update(runes("o"))
	m = next.(HistoryModel)
	assert.Equal(t, []string{"s1", "s2", "s3"}, rowIDs(m))

	next, _ = m.Update(runes("/"))
	m = next.(HistoryModel)
	require.True(t, m.searching)

	next, _ = m.Update(runes("thesis"))
	m = next.(HistoryModel)
	assert.Equal(t, []string{"s2"}, rowIDs(m))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(HistoryModel)
	assert.False(t, m.searching)
	assert.Len(t, m.rows, 3)
}

func TestHistoryModel_SelectionIsClamped(t *testing.T) {
	sessions, tasks := historyFixture()
	m := NewHistoryModel(sessions, tasks, "math", stats.NewestFirst)
	require.Len(t, m.rows, 2)

	for i := 0; i < 5; i++ {
		next, _ := m.Update(runes("j"))
		m = next.(HistoryModel)
	}
	assert.Equal(t, 1, m.selected)

	next, _ := m.Update(runes("k"))
	assert.Equal(t, 0, next.(HistoryModel).selected)
}

func TestSummarizeModel(t *testing.T) {
	m := NewSummarizeModel(context.Background(), func(context.Context) (string, error) {
		return "- key idea", nil
	})

	next, cmd := m.Update(m.run())
	require.NotNil(t, cmd)
	summary, err := next.(SummarizeModel).Result()
	require.NoError(t, err)
	assert.Equal(t, "- key idea", summary)
}

func TestSummarizeModel_ErrorAndCancel(t *testing.T) {
	boom := errors.New("boom")
	m := NewSummarizeModel(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})

	next, _ := m.Update(m.run())
	_, err := next.(SummarizeModel).Result()
	assert.ErrorIs(t, err, boom)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, err = next.(SummarizeModel).Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShimmer_SweepsThenPauses(t *testing.T) {
	s := NewShimmer()
	before := s.center
	s = s.Advance(10)
	assert.Greater(t, s.center, before)

	for i := 0; i < shimmerCycleTicks; i++ {
		s = s.Advance(10)
	}
	assert.Positive(t, s.pause)

	assert.NotEmpty(t, s.Render("Task name"))
	assert.Empty(t, s.Render(""))
}

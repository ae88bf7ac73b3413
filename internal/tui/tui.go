package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/tracker"
)

// TimerOutcome reports how the timer view was left
type TimerOutcome struct {
	// Stopped is the finalized session when the user pressed s
	Stopped *models.Session
	// Detached is true when the user left the session running
	Detached bool
}

// RunTimerTUI shows the running session until the user stops or leaves.
// A tick driver feeds elapsed time into the view while it is open.
func RunTimerTUI(ctx context.Context, store *tracker.Store, interval time.Duration, log *slog.Logger) (TimerOutcome, error) {
	if !store.Active().IsRunning() {
		return TimerOutcome{}, fmt.Errorf("no timer is running")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewTimerModel(store), tea.WithAltScreen(), tea.WithContext(ctx))

	driver := tracker.NewDriver(store, interval,
		tracker.WithDriverLogger(log),
		tracker.OnTick(func(elapsed int) { p.Send(timerTickMsg{elapsed: elapsed}) }),
	)
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	finalModel, err := p.Run()
	cancel()
	if derr := <-done; derr != nil {
		log.Warn("tick driver stopped", slog.Any("error", derr))
	}
	if err != nil {
		return TimerOutcome{}, err
	}

	m, ok := finalModel.(TimerModel)
	if !ok || !m.stopping {
		return TimerOutcome{Detached: true}, nil
	}

	stopped, err := store.StopTimer(context.Background())
	if err != nil {
		return TimerOutcome{}, fmt.Errorf("failed to stop session: %w", err)
	}
	return TimerOutcome{Stopped: stopped}, nil
}

// RunTaskFormTUI asks for a task name and category
func RunTaskFormTUI(title, name, category string) (TaskFormResult, error) {
	finalModel, err := tea.NewProgram(NewTaskFormModel(title, name, category)).Run()
	if err != nil {
		return TaskFormResult{}, err
	}
	m, ok := finalModel.(TaskFormModel)
	if !ok {
		return TaskFormResult{Cancelled: true}, nil
	}
	return m.Result(), nil
}

// RunHistoryTUI opens the session browser
func RunHistoryTUI(model HistoryModel) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// RunSummarizeTUI runs fn behind a spinner
func RunSummarizeTUI(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	finalModel, err := tea.NewProgram(NewSummarizeModel(ctx, fn)).Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(SummarizeModel)
	if !ok {
		return "", context.Canceled
	}
	return m.Result()
}

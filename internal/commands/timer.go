package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studywise/internal/models"
	"github.com/balkashynov/studywise/internal/stats"
	"github.com/balkashynov/studywise/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start studying a task",
	Long: `Start the study timer on a task. Opens the interactive timer by default,
use --no-ui for a simple start. A timer already running on another task is
stopped and saved first.

Examples:
  studywise start 3f2a        # Start timer with interactive UI
  studywise start 3f2a --no-ui # Start timer without UI`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		task, err := current.store.ResolveTask(args[0])
		if err != nil {
			return err
		}

		previous, err := current.store.StartTimer(cmd.Context(), task.ID)
		if err != nil {
			return err
		}
		if previous != nil {
			printStopped(out, previous)
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Fprintf(out, "⏱️  Started studying %s\n", taskLabel(task))
			fmt.Fprintf(out, "Started at: %s\n", current.store.Now().Local().Format("15:04:05"))
			return nil
		}

		outcome, err := tui.RunTimerTUI(cmd.Context(), current.store, current.cfg.Timer.TickInterval, current.log)
		if err != nil {
			return err
		}
		if outcome.Stopped != nil {
			printStopped(out, outcome.Stopped)
		} else if outcome.Detached {
			fmt.Fprintf(out, "\n💡 Timer is still running for %s\n", task.Name)
			fmt.Fprintln(out, "   Use 'studywise status' to check it or 'studywise stop' to stop it.")
		}
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the study timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		stopped, err := current.store.StopTimer(cmd.Context())
		if err != nil {
			return err
		}
		if stopped == nil {
			fmt.Fprintln(out, "No active study session")
			return nil
		}
		printStopped(out, stopped)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running study timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		active := current.store.Active()
		if !active.IsRunning() {
			fmt.Fprintln(out, "No active study session")
			return nil
		}

		name := models.UnknownTaskName
		if task, ok := current.store.TaskByID(active.TaskID); ok {
			name = taskLabel(task)
		}

		now := current.store.Now()
		started := active.SegmentStart.Add(-time.Duration(active.AccruedSeconds) * time.Second)

		fmt.Fprintf(out, "⏱️  Currently studying: %s\n", name)
		fmt.Fprintf(out, "Started: %s (%s)\n", started.Local().Format("15:04:05"), relTime(started, now))
		fmt.Fprintf(out, "Elapsed time: %s\n", stats.FormatDuration(active.ElapsedSeconds))
		return nil
	},
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start timer without interactive UI")
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studywise/internal/stats"
	"github.com/balkashynov/studywise/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded study sessions",
	Long: `Show recorded study sessions, newest first.

Search matches the task name, category or session notes (case-insensitive).

Examples:
  studywise history --search calculus
  studywise history --oldest --limit 20
  studywise history -i                 # browse interactively`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		query, _ := cmd.Flags().GetString("search")
		oldest, _ := cmd.Flags().GetBool("oldest")
		limit, _ := cmd.Flags().GetInt("limit")
		interactive, _ := cmd.Flags().GetBool("interactive")

		order := stats.NewestFirst
		if oldest {
			order = stats.OldestFirst
		}

		snap := current.store.Snapshot()
		if interactive {
			return tui.RunHistoryTUI(tui.NewHistoryModel(snap.Sessions, snap.Tasks, query, order))
		}

		rows := stats.FilterSessions(snap.Sessions, snap.Tasks, query, order)
		if len(rows) == 0 {
			if query != "" {
				fmt.Fprintf(out, "No sessions match %q.\n", query)
			} else {
				fmt.Fprintln(out, "No study sessions yet. Use 'studywise start <task-id>' to begin.")
			}
			return nil
		}
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}

		now := current.store.Now()
		fmt.Fprintf(out, "%-8s %-17s %-9s %-30s %s\n", "ID", "STARTED", "DURATION", "TASK", "ENDED")
		fmt.Fprintln(out, strings.Repeat("-", 84))
		for _, s := range rows {
			fmt.Fprintf(out, "%-8s %-17s %-9s %-30s %s\n",
				shortID(s.ID),
				s.StartTime.Local().Format("2006-01-02 15:04"),
				stats.FormatDuration(s.Duration),
				truncate(stats.DisplayName(s, snap.Tasks), 30),
				relTime(s.EndTime, now))
			if s.Notes != "" {
				fmt.Fprintf(out, "         📝 %s\n", truncate(strings.ReplaceAll(s.Notes, "\n", " "), 70))
			}
		}
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <session-id> [text]",
	Short: "Set the notes of a study session",
	Long: `Set the notes of a study session, replacing any existing notes.
Omit the text to clear them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		session, err := current.store.ResolveSession(args[0])
		if err != nil {
			return err
		}

		notes := strings.TrimSpace(strings.Join(args[1:], " "))
		if err := current.store.AddSessionNote(cmd.Context(), session.ID, notes); err != nil {
			return err
		}

		if notes == "" {
			fmt.Fprintf(out, "📝 Cleared notes of session %s\n", shortID(session.ID))
		} else {
			fmt.Fprintf(out, "📝 Saved notes for session %s\n", shortID(session.ID))
		}
		return nil
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <session-id>",
	Short: "Delete a recorded study session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := current.store.ResolveSession(args[0])
		if err != nil {
			return err
		}
		if err := current.store.DeleteSession(cmd.Context(), session.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted session %s (%s, %s)\n",
			shortID(session.ID), session.TaskName, stats.FormatDuration(session.Duration))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("search", "s", "", "Filter by task, category or notes")
	historyCmd.Flags().Bool("oldest", false, "Show oldest sessions first")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many sessions")
	historyCmd.Flags().BoolP("interactive", "i", false, "Browse sessions in an interactive view")
}

package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studywise/internal/parser"
	"github.com/balkashynov/studywise/internal/stats"
)

// referenceDate reads --at, defaulting to the store clock
func referenceDate(cmd *cobra.Command) (time.Time, error) {
	now := current.store.Now().Local()
	at, _ := cmd.Flags().GetString("at")
	return parser.ParseReferenceDate(at, now)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show study time for today, this week and this month",
	Long: `Show total study time for the day, the Monday-to-Sunday week and the
calendar month. A session counts where it ended.

Examples:
  studywise summary
  studywise summary --at yesterday
  studywise summary --at 01/03/2025`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := referenceDate(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sum := stats.TimeSummary(current.store.Sessions(), ref)
		week := stats.Week(ref)

		fmt.Fprintf(out, "📅 Day    %-26s %s\n", ref.Format("Mon Jan 2"), stats.FormatDuration(sum.Daily))
		fmt.Fprintf(out, "🗓  Week   %-26s %s\n",
			week.Start.Format("Jan 2")+" - "+week.End.Format("Jan 2"), stats.FormatDuration(sum.Weekly))
		fmt.Fprintf(out, "📆 Month  %-26s %s\n", ref.Format("January 2006"), stats.FormatDuration(sum.Monthly))
		return nil
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Show study time per subject",
	Long: `Show study time per subject. Tasks are grouped by category; a task
without a category is its own subject. Use --tasks for a per-task breakdown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		snap := current.store.Snapshot()
		perTask, _ := cmd.Flags().GetBool("tasks")

		if len(snap.Sessions) == 0 {
			fmt.Fprintln(out, "No study sessions yet.")
			return nil
		}

		if perTask {
			printTaskBreakdown(out, stats.TaskBreakdown(snap.Sessions, snap.Tasks))
			return nil
		}

		subjects := stats.SubjectBreakdown(snap.Sessions, snap.Tasks)
		total := stats.Total(subjects)

		fmt.Fprintf(out, "%-28s %9s %6s  %-20s %s\n", "SUBJECT", "TIME", "SHARE", "", "TASKS/SESSIONS")
		fmt.Fprintln(out, strings.Repeat("-", 84))
		for _, s := range subjects {
			name := truncate(s.Name, 26)
			if s.IsCategory {
				name = "📚 " + name
			} else {
				name = "📄 " + name
			}
			share := stats.Share(s.TotalTime, total)
			fmt.Fprintf(out, "%-28s %9s %5.1f%%  %s  %d/%d\n",
				name, formatHours(s.TotalTime), share, bar(share, 20), s.TaskCount, s.SessionCount)
		}
		fmt.Fprintln(out, strings.Repeat("-", 84))
		fmt.Fprintf(out, "%-26s %9s\n", "Total", formatHours(total))
		return nil
	},
}

func printTaskBreakdown(out io.Writer, rows []stats.TaskTime) {
	fmt.Fprintf(out, "%-40s %-15s %s\n", "TASK", "CATEGORY", "TIME")
	fmt.Fprintln(out, strings.Repeat("-", 66))
	for _, r := range rows {
		fmt.Fprintf(out, "%-40s %-15s %s\n", truncate(r.Name, 40), truncate(r.Category, 15), formatHours(r.TotalTime))
	}
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show a weekly timesheet",
	Long: `Show study minutes per task and day for the Monday-to-Sunday week.

Example output:
  Task                   Mon  Tue  Wed  Thu  Fri  Sat  Sun  Total
  Calculus                60    -   45    -    -    -    -    105
  Essay                    -   30    -    -    -    -    -     30
  Total                   60   30   45    0    0    0    0    135`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := referenceDate(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		snap := current.store.Snapshot()
		ts := stats.WeeklyTimesheet(snap.Sessions, snap.Tasks, ref)
		if len(ts.Rows) == 0 {
			fmt.Fprintln(out, "No study time tracked this week.")
			return nil
		}
		printTimesheet(out, ts)
		return nil
	},
}

// minutes rounds up so short sessions still show
func minutes(seconds int) int {
	return (seconds + 59) / 60
}

func printTimesheet(out io.Writer, ts stats.Timesheet) {
	nameWidth := 20
	for _, r := range ts.Rows {
		nameWidth = max(nameWidth, len([]rune(r.Name)))
	}
	nameWidth = min(nameWidth, 40)

	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	separator := strings.Repeat("-", nameWidth) + strings.Repeat("  ---", 7) + "  -----"

	fmt.Fprintf(out, "%-*s", nameWidth, "Task")
	for _, d := range dayNames {
		fmt.Fprintf(out, "  %3s", d)
	}
	fmt.Fprintf(out, "  %5s\n", "Total")
	fmt.Fprintln(out, separator)

	for _, r := range ts.Rows {
		fmt.Fprintf(out, "%-*s", nameWidth, truncate(r.Name, nameWidth))
		for _, secs := range r.Days {
			if secs > 0 {
				fmt.Fprintf(out, "  %3d", minutes(secs))
			} else {
				fmt.Fprintf(out, "  %3s", "-")
			}
		}
		fmt.Fprintf(out, "  %5d\n", minutes(r.Total))
	}

	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "%-*s", nameWidth, "Total")
	for _, secs := range ts.Totals {
		fmt.Fprintf(out, "  %3d", minutes(secs))
	}
	fmt.Fprintf(out, "  %5d\n", minutes(ts.Total))

	fmt.Fprintf(out, "\nWeek of %s to %s (minutes)\n",
		ts.Week.Start.Format("Jan 2"),
		ts.Week.End.Format("Jan 2, 2006"))
}

func init() {
	summaryCmd.Flags().String("at", "", "Reference date: today, yesterday, dd/mm/yyyy or 'X days ago'")
	weekCmd.Flags().String("at", "", "Any date inside the week to show")
	subjectsCmd.Flags().Bool("tasks", false, "Break down by task instead of subject")
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studywise/internal/parser"
	"github.com/balkashynov/studywise/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task name]",
	Short: "Add a new study task",
	Long: `Add a new study task with an optional category.

Modes:
  Interactive: studywise add (no arguments opens a form)
  Quick: studywise add "Read chapter 3" -c Math
  Smart parsing: studywise add "Read chapter 3 @Math"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		category, _ := cmd.Flags().GetString("category")

		var name string
		if len(args) == 0 {
			r, err := tui.RunTaskFormTUI("New study task", "", category)
			if err != nil {
				return err
			}
			if r.Cancelled {
				fmt.Fprintln(out, "❌ Task creation cancelled.")
				return nil
			}
			name, category = r.Name, r.Category
		} else {
			parsed := parser.ParseTaskInput(strings.Join(args, " "))
			name = parsed.Name
			if category == "" {
				category = parsed.Category
			}
		}

		if err := parser.ValidateTask(name, category); err != nil {
			return err
		}

		task, err := current.store.AddTask(cmd.Context(), strings.TrimSpace(name), category)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ New task \"%s\" added - ID: %s\n", taskLabel(task), shortID(task.ID))
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Rename a task or change its category",
	Long: `Rename a task or change its category. Without flags a form opens
prefilled with the current values. Renaming also renames the task in every
recorded session. Pass --category "" to clear the category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		task, err := current.store.ResolveTask(args[0])
		if err != nil {
			return err
		}

		name := task.Name
		var category *string

		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("category") {
			r, err := tui.RunTaskFormTUI("Edit task", task.Name, task.Category)
			if err != nil {
				return err
			}
			if r.Cancelled {
				fmt.Fprintln(out, "❌ Edit cancelled.")
				return nil
			}
			name, category = r.Name, &r.Category
		} else {
			if cmd.Flags().Changed("name") {
				name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("category") {
				c, _ := cmd.Flags().GetString("category")
				category = &c
			}
		}

		checkCategory := task.Category
		if category != nil {
			checkCategory = *category
		}
		if err := parser.ValidateTask(name, checkCategory); err != nil {
			return err
		}

		if err := current.store.EditTask(cmd.Context(), task.ID, strings.TrimSpace(name), category); err != nil {
			return err
		}
		updated, _ := current.store.TaskByID(task.ID)
		fmt.Fprintf(out, "✏️  Task %s updated: %s\n", shortID(task.ID), taskLabel(updated))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long: `Delete a task. Its recorded sessions are kept and still count towards
totals. A timer running on the task is stopped and saved first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		task, err := current.store.ResolveTask(args[0])
		if err != nil {
			return err
		}

		stopped, err := current.store.DeleteTask(cmd.Context(), task.ID)
		if err != nil {
			return err
		}
		if stopped != nil {
			printStopped(out, stopped)
		}
		fmt.Fprintf(out, "🗑️  Deleted task %s: %s\n", shortID(task.ID), task.Name)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with their category and total studied time",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		snap := current.store.Snapshot()
		category, _ := cmd.Flags().GetString("category")

		if len(snap.Tasks) == 0 {
			fmt.Fprintln(out, "No tasks found. Use 'studywise add \"task name\"' to create your first task.")
			return nil
		}

		totals := make(map[string]int)
		for _, s := range snap.Sessions {
			totals[s.TaskID] += s.Duration
		}

		fmt.Fprintf(out, "  %-8s %-40s %-15s %s\n", "ID", "TASK", "CATEGORY", "TOTAL")
		fmt.Fprintln(out, strings.Repeat("-", 76))

		shown := 0
		for _, task := range snap.Tasks {
			if category != "" && !strings.EqualFold(task.Category, category) {
				continue
			}
			marker := " "
			if snap.Active.TaskID == task.ID && snap.Active.IsRunning() {
				marker = "▶"
			}
			fmt.Fprintf(out, "%s %-8s %-40s %-15s %s\n",
				marker,
				shortID(task.ID),
				truncate(task.Name, 38),
				truncate(task.Category, 13),
				formatHours(totals[task.ID]))
			shown++
		}

		if shown == 0 {
			fmt.Fprintf(out, "No tasks in category %q.\n", category)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("category", "c", "", "Category (subject) for the task")

	editCmd.Flags().StringP("name", "n", "", "New task name")
	editCmd.Flags().StringP("category", "c", "", "New category (empty clears it)")

	listCmd.Flags().StringP("category", "c", "", "Only show tasks in this category")
}

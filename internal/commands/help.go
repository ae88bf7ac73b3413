package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:         "guide",
	Short:       "Show a quick guide to studywise",
	Long:        `Display a compact overview of all studywise commands and flags.`,
	Annotations: map[string]string{skipApp: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), guideText)
	},
}

const guideText = `
s t u d y w i s e  -  study timer and time tracker

TASKS:

  add <name>              Create a task (no name opens a form)
    -c, --category        Category (subject)
    Smart syntax:
      @subject            Set category, e.g. studywise add "Read ch. 3 @Math"

  edit <id>               Rename or recategorize (no flags opens a form)
    -n, --name            New name
    -c, --category        New category ("" clears it)
  rm <id>                 Delete a task, keeping its sessions
  ls                      List tasks with total time
    -c, --category        Only one category

TIMER:

  start <id>              Start the timer (stops any running one)
    --no-ui               Start without the interactive timer
  stop                    Stop and save the running session
  status                  Show the running session

SESSIONS:

  history                 List recorded sessions
    -s, --search          Match task, category or notes
    --oldest              Oldest first
    -n, --limit           Show at most N
    -i, --interactive     Browse interactively
  note <id> [text]        Set or clear session notes
  forget <id>             Delete a session

REPORTS:

  summary                 Today, this week, this month
    --at                  Reference date (yesterday, dd/mm/yyyy, 3 days ago)
  subjects                Time per subject
    --tasks               Time per task instead
  week                    Weekly timesheet in minutes
    --at                  Any date in the week

NOTES:

  summarize [file]        Summarize notes (stdin when no file)
    --session             Use a session's notes
    --no-ui               No spinner

IDs can be shortened to any unique prefix.

`

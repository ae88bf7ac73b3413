package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studywise/internal/config"
	"github.com/balkashynov/studywise/internal/parser"
	"github.com/balkashynov/studywise/internal/summarizer"
	"github.com/balkashynov/studywise/internal/tui"
)

// noteSummarizer condenses notes into a summary
type noteSummarizer interface {
	Summarize(ctx context.Context, notes string) (string, error)
}

// newSummarizer is swapped in tests
var newSummarizer = func(cfg config.SummarizerConfig, log *slog.Logger) (noteSummarizer, error) {
	s, err := summarizer.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize study notes",
	Long: `Summarize study notes with an LLM. Notes are read from a file, from
stdin when the file is "-" or omitted, or from a recorded session with
--session. Notes must be between 50 and 10,000 characters.

Requires ANTHROPIC_API_KEY (or summarizer.api_key in the config file).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		notes, err := readNotes(cmd, args)
		if err != nil {
			return err
		}
		if err := parser.ValidateNotes(notes); err != nil {
			return err
		}

		s, err := newSummarizer(current.cfg.Summarizer, current.log)
		if err != nil {
			return err
		}

		var summary string
		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			summary, err = s.Summarize(cmd.Context(), notes)
		} else {
			summary, err = tui.RunSummarizeTUI(cmd.Context(), func(ctx context.Context) (string, error) {
				return s.Summarize(ctx, notes)
			})
		}
		if err != nil {
			return fmt.Errorf("summarize failed: %w", err)
		}

		fmt.Fprintln(out, "✨ Summary")
		fmt.Fprintln(out)
		fmt.Fprintln(out, summary)
		return nil
	},
}

func readNotes(cmd *cobra.Command, args []string) (string, error) {
	if ref, _ := cmd.Flags().GetString("session"); ref != "" {
		session, err := current.store.ResolveSession(ref)
		if err != nil {
			return "", err
		}
		return session.Notes, nil
	}

	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return string(b), nil
}

func init() {
	summarizeCmd.Flags().String("session", "", "Summarize the notes of this session")
	summarizeCmd.Flags().Bool("no-ui", false, "Print the summary without the progress spinner")
}

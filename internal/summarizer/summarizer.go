package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/balkashynov/studywise/internal/config"
	"github.com/balkashynov/studywise/internal/parser"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("summarizer: no API key configured (set ANTHROPIC_API_KEY)")
	// ErrEmptySummary is returned when the model produced no text.
	ErrEmptySummary = errors.New("summarizer: empty response")
)

// messageCreator is the subset of the Messages API the summarizer needs.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Summarizer condenses study notes with a single model call.
type Summarizer struct {
	messages  messageCreator
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// New builds a Summarizer from cfg. It returns ErrNotConfigured when the
// API key is missing.
func New(cfg config.SummarizerConfig, log *slog.Logger) (*Summarizer, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return newWithCreator(&client.Messages, cfg, log), nil
}

func newWithCreator(mc messageCreator, cfg config.SummarizerConfig, log *slog.Logger) *Summarizer {
	if log == nil {
		log = slog.Default()
	}
	return &Summarizer{
		messages:  mc,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		log:       log,
	}
}

// Summarize returns a condensed summary of notes. Notes are validated first;
// the call is bounded by the configured timeout.
func (s *Summarizer) Summarize(ctx context.Context, notes string) (string, error) {
	if err := parser.ValidateNotes(notes); err != nil {
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(notes))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarizer: llm api call: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", ErrEmptySummary
	}

	s.log.Debug("notes summarized",
		slog.String("model", s.model),
		slog.Int("input_chars", len(notes)),
		slog.Int("output_chars", len(summary)),
		slog.Duration("took", time.Since(start)),
	)
	return summary, nil
}

func buildPrompt(notes string) string {
	return fmt.Sprintf(`You are a study assistant. Summarize the student's notes below.

Rules:
- Keep the key concepts, definitions and formulas
- Use short bullet points grouped by topic
- Write in the same language as the notes
- Output ONLY the summary, no preamble

Notes:
%s`, notes)
}

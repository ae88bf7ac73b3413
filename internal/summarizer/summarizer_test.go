package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studywise/internal/config"
	"github.com/balkashynov/studywise/internal/parser"
)

type fakeCreator struct {
	resp  *anthropic.Message
	err   error
	calls int
	last  anthropic.MessageNewParams
	block bool
}

func (f *fakeCreator) New(ctx context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.calls++
	f.last = body
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func textMessage(parts ...string) *anthropic.Message {
	msg := &anthropic.Message{}
	for _, p := range parts {
		msg.Content = append(msg.Content, anthropic.ContentBlockUnion{Type: "text", Text: p})
	}
	return msg
}

var testCfg = config.SummarizerConfig{
	APIKey:    "sk-test",
	Model:     "claude-test",
	MaxTokens: 256,
	Timeout:   time.Second,
}

var longNotes = strings.Repeat("Photosynthesis converts light energy into chemical energy. ", 3)

func TestNew_NotConfigured(t *testing.T) {
	_, err := New(config.SummarizerConfig{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_Configured(t *testing.T) {
	s, err := New(testCfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude-test", s.model)
}

func TestSummarize_Success(t *testing.T) {
	fake := &fakeCreator{resp: textMessage("- light ", "to chemical energy\n")}
	s := newWithCreator(fake, testCfg, nil)

	got, err := s.Summarize(context.Background(), longNotes)
	require.NoError(t, err)

	assert.Equal(t, "- light to chemical energy", got)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, anthropic.Model("claude-test"), fake.last.Model)
	assert.EqualValues(t, 256, fake.last.MaxTokens)
	require.Len(t, fake.last.Messages, 1)
}

func TestSummarize_RejectsShortNotes(t *testing.T) {
	fake := &fakeCreator{resp: textMessage("x")}
	s := newWithCreator(fake, testCfg, nil)

	_, err := s.Summarize(context.Background(), "short")

	var verr *parser.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, fake.calls)
}

func TestSummarize_EmptyResponse(t *testing.T) {
	s := newWithCreator(&fakeCreator{resp: textMessage("   ")}, testCfg, nil)

	_, err := s.Summarize(context.Background(), longNotes)

	assert.ErrorIs(t, err, ErrEmptySummary)
}

func TestSummarize_APIError(t *testing.T) {
	boom := errors.New("boom")
	s := newWithCreator(&fakeCreator{err: boom}, testCfg, nil)

	_, err := s.Summarize(context.Background(), longNotes)

	assert.ErrorIs(t, err, boom)
}

func TestSummarize_Timeout(t *testing.T) {
	cfg := testCfg
	cfg.Timeout = 10 * time.Millisecond
	s := newWithCreator(&fakeCreator{block: true}, cfg, nil)

	_, err := s.Summarize(context.Background(), longNotes)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskInput(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		category string
	}{
		{"Read chapter 3 @math", "Read chapter 3", "math"},
		{"@physics Lab report", "Lab report", "physics"},
		{"Essay  draft", "Essay draft", ""},
		{"Email bob@example.com", "Email bob@example.com", ""},
		{"Flashcards @lang @extra", "Flashcards @extra", "lang"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTaskInput(tt.input)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestValidateTask(t *testing.T) {
	assert.NoError(t, ValidateTask("Calculus", "Math"))
	assert.NoError(t, ValidateTask(strings.Repeat("a", MaxNameLength), strings.Repeat("c", MaxCategoryLength)))

	assert.ErrorIs(t, ValidateTask("   ", ""), ErrEmptyName)

	var verr *ValidationError
	err := ValidateTask(strings.Repeat("a", MaxNameLength+1), "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	err = ValidateTask("ok", strings.Repeat("c", MaxCategoryLength+1))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)
}

func TestValidateNotes(t *testing.T) {
	assert.NoError(t, ValidateNotes(strings.Repeat("n", MinNotesLength)))
	assert.NoError(t, ValidateNotes(strings.Repeat("n", MaxNotesLength)))

	var verr *ValidationError
	require.True(t, errors.As(ValidateNotes("too short"), &verr))
	assert.Contains(t, verr.Error(), "at least")

	require.True(t, errors.As(ValidateNotes(strings.Repeat("n", MaxNotesLength+1)), &verr))
	assert.Contains(t, verr.Error(), "at most")
}

func TestParseReferenceDate(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"", now},
		{"today", now},
		{"Yesterday", now.AddDate(0, 0, -1)},
		{"01/03/2025", time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"1 week ago", now.AddDate(0, 0, -7)},
		{"2 months ago", now.AddDate(0, -2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReferenceDate(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	for _, bad := range []string{"31/02/2025", "next week", "3 days", "13/13/2025"} {
		_, err := ParseReferenceDate(bad, now)
		assert.Error(t, err, bad)
	}
}

package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input limits
const (
	MaxNameLength     = 100
	MaxCategoryLength = 50
	MinNotesLength    = 50
	MaxNotesLength    = 10000
)

// ErrEmptyName is returned when a task name is blank
var ErrEmptyName = errors.New("task name is required")

// ValidationError describes a rejected field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateTask checks a task name and category before they reach the store.
// Both are trimmed first.
func ValidateTask(name, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters (got %d)", MaxNameLength, n),
		}
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(category)); n > MaxCategoryLength {
		return &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("must be at most %d characters (got %d)", MaxCategoryLength, n),
		}
	}
	return nil
}

// ValidateNotes checks notes submitted for summarization
func ValidateNotes(notes string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(notes))
	switch {
	case n < MinNotesLength:
		return &ValidationError{
			Field:  "notes",
			Reason: fmt.Sprintf("must be at least %d characters (got %d)", MinNotesLength, n),
		}
	case n > MaxNotesLength:
		return &ValidationError{
			Field:  "notes",
			Reason: fmt.Sprintf("must be at most %d characters (got %d)", MaxNotesLength, n),
		}
	}
	return nil
}

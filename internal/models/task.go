package models

import (
	"strings"
	"time"
)

// Task represents a subject or activity that time is tracked against
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"` // empty means no category
	CreatedAt time.Time `json:"createdAt"`
}

// HasCategory reports whether the task carries a category
func (t Task) HasCategory() bool {
	return t.Category != ""
}

// NormalizeCategory maps blank categories to the empty (absent) value
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return ""
	}
	return category
}

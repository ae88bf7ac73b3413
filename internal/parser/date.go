package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks|month|months)\s+ago$`)
)

// ParseReferenceDate parses the reference point for time summaries
// Supported formats:
// - today, yesterday
// - dd/mm/yyyy (e.g., "15/12/2024")
// - X days/weeks/months ago (e.g., "3 days ago")
// The result keeps the time of day of now so windows are anchored the same way.
func ParseReferenceDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", "today", "now":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if ref, err := parseDate(input, now); err == nil {
		return ref, nil
	}

	if ref, err := parseAgo(input, now); err == nil {
		return ref, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q. Use: today, yesterday, dd/mm/yyyy, or X days/weeks/months ago", input)
}

// parseDate parses dd/mm/yyyy format
func parseDate(input string, now time.Time) (time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	ref := time.Date(year, time.Month(month), day,
		now.Hour(), now.Minute(), now.Second(), 0, now.Location())

	// Catches 31/02 and friends
	if ref.Day() != day || ref.Month() != time.Month(month) || ref.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return ref, nil
}

// parseAgo parses "X unit ago"
func parseAgo(input string, now time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount > 3650 {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days":
		return now.AddDate(0, 0, -amount), nil
	case "week", "weeks":
		return now.AddDate(0, 0, -7*amount), nil
	default:
		return now.AddDate(0, -amount, 0), nil
	}
}

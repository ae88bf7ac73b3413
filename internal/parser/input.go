package parser

import (
	"regexp"
	"strings"
)

// ParsedTask is a task parsed from free-form command arguments
type ParsedTask struct {
	Name     string
	Category string
}

var categoryRegex = regexp.MustCompile(`(^|\s)@(\S+)`)

// ParseTaskInput extracts an @category token from a task name
// Syntax: "Read chapter 3 @math"
// Only the first @token is taken as the category; the rest stay in the name.
func ParseTaskInput(input string) ParsedTask {
	var result ParsedTask

	if m := categoryRegex.FindStringSubmatchIndex(input); m != nil {
		result.Category = input[m[4]:m[5]]
		input = input[:m[0]] + " " + input[m[1]:]
	}

	// Collapse the whitespace left behind
	result.Name = strings.Join(strings.Fields(input), " ")
	return result
}

package catalog

import (
	"fmt"
	"strings"
)

// ParseError represents a failure decoding the authored dataset.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Problem is one data-authoring issue found by Validate.
type Problem struct {
	Slug    string
	Field   string
	Message string
}

// LintError lists every problem found in a dataset.
type LintError struct {
	Problems []Problem
}

func (e *LintError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("catalog has %d problem(s):\n", len(e.Problems)))
	for i, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s: %s\n", i+1, p.Slug, p.Field, p.Message))
	}
	return sb.String()
}

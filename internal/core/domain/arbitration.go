package domain

import (
	"fmt"
	"strings"
)

// ResolutionChoice is the operator's answer to a hard merge conflict.
type ResolutionChoice string

// Arbitration tokens. Anything else is invalid.
const (
	// KeepFirst keeps the first record of the conflict and discards the second.
	KeepFirst ResolutionChoice = "a"

	// KeepSecond keeps the second record of the conflict and discards the first.
	KeepSecond ResolutionChoice = "b"
)

// IsValid returns true for KeepFirst and KeepSecond only.
func (c ResolutionChoice) IsValid() bool {
	return c == KeepFirst || c == KeepSecond
}

// String returns the token.
func (c ResolutionChoice) String() string {
	return string(c)
}

// ParseResolutionChoice accepts exactly "a" or "b", ignoring surrounding
// whitespace and case. Any other input fails with ErrInvalidChoice.
func ParseResolutionChoice(input string) (ResolutionChoice, error) {
	c := ResolutionChoice(strings.ToLower(strings.TrimSpace(input)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidChoice, input, KeepFirst, KeepSecond)
	}
	return c, nil
}

// MergeConflict is handed to a resolver when two same-description records
// disagree on an annotation that cannot be combined.
type MergeConflict struct {
	// First is the incoming record.
	First QuestionRecord

	// Second is the record already held by the aggregator.
	Second QuestionRecord

	// Fields names the annotations present on both sides with different values.
	Fields []string
}

// Description returns the shared prompt text.
func (c MergeConflict) Description() string {
	return c.First.Description
}

// Pick returns the record selected by choice.
func (c MergeConflict) Pick(choice ResolutionChoice) (QuestionRecord, error) {
	switch choice {
	case KeepFirst:
		return c.First.Clone(), nil
	case KeepSecond:
		return c.Second.Clone(), nil
	default:
		return QuestionRecord{}, fmt.Errorf("%w: %q", ErrInvalidChoice, string(choice))
	}
}

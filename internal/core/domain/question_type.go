package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// QuestionType classifies how a question is answered.
type QuestionType int

// Available question types. The numeric values match the archive format.
const (
	// QuestionTypeUnknown is the zero value and is never valid.
	QuestionTypeUnknown QuestionType = 0

	// QuestionTypeSingle has exactly one correct choice.
	QuestionTypeSingle QuestionType = 1

	// QuestionTypeMultiple has one or more correct choices.
	QuestionTypeMultiple QuestionType = 2

	// QuestionTypeTrueFalse is a two-choice judgement question.
	QuestionTypeTrueFalse QuestionType = 3
)

// IsValid returns true if the question type is recognised.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeSingle, QuestionTypeMultiple, QuestionTypeTrueFalse:
		return true
	default:
		return false
	}
}

// String returns the enumeration name.
func (t QuestionType) String() string {
	switch t {
	case QuestionTypeSingle:
		return "SINGLE"
	case QuestionTypeMultiple:
		return "MULTIPLE"
	case QuestionTypeTrueFalse:
		return "TRUE_FALSE"
	default:
		return "UNKNOWN"
	}
}

// Description returns a human-readable label.
func (t QuestionType) Description() string {
	switch t {
	case QuestionTypeSingle:
		return "Single choice"
	case QuestionTypeMultiple:
		return "Multiple choice"
	case QuestionTypeTrueFalse:
		return "True / False"
	default:
		return unknownDescription
	}
}

// AllQuestionTypes returns every valid question type.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{QuestionTypeSingle, QuestionTypeMultiple, QuestionTypeTrueFalse}
}

// ParseQuestionType coerces an integer code or enumeration name into a QuestionType.
// Returns false if the value does not name a valid type.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		t := QuestionType(n)
		return t, t.IsValid()
	}
	switch strings.ToUpper(s) {
	case "SINGLE":
		return QuestionTypeSingle, true
	case "MULTIPLE":
		return QuestionTypeMultiple, true
	case "TRUE_FALSE", "TRUEFALSE":
		return QuestionTypeTrueFalse, true
	default:
		return QuestionTypeUnknown, false
	}
}

// MarshalJSON encodes the type as its integer code.
func (t QuestionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

package domain

import (
	"fmt"
	"sort"
)

// StringSet is an unordered set of strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Equal reports whether both sets hold the same members.
func (s StringSet) Equal(other StringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if _, ok := other[v]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Question wraps a validated QuestionRecord and answers comparison queries about it.
type Question struct {
	record QuestionRecord
}

// NewQuestion validates rec and wraps it.
// It fails with an *InvalidQuestionError if a required field is missing,
// the type is not a known QuestionType, or an answer index is out of range.
func NewQuestion(rec QuestionRecord) (*Question, error) {
	missing := append([]string(nil), rec.missing...)
	if rec.Choices == nil && !containsString(missing, FieldChoices) {
		missing = append(missing, FieldChoices)
	}
	if rec.AnswerIndex.IsZero() && !containsString(missing, FieldAnswerIndex) {
		missing = append(missing, FieldAnswerIndex)
	}
	if len(missing) > 0 {
		return nil, &InvalidQuestionError{
			Description: rec.Description,
			Field:       missing[0],
			Reason:      fmt.Sprintf("missing required field(s): %v", missing),
		}
	}

	if !rec.Type.IsValid() {
		raw := rec.rawType
		if raw == "" {
			raw = fmt.Sprintf("%d", int(rec.Type))
		}
		return nil, &InvalidQuestionError{
			Description: rec.Description,
			Field:       FieldType,
			Reason:      fmt.Sprintf("unknown question type %q", raw),
		}
	}

	for _, i := range rec.AnswerIndex.indices {
		if i < 0 || i >= len(rec.Choices) {
			return nil, &InvalidQuestionError{
				Description: rec.Description,
				Field:       FieldAnswerIndex,
				Reason:      fmt.Sprintf("answer index %d out of range for %d choices", i, len(rec.Choices)),
			}
		}
	}

	rec = rec.Clone()
	rec.rawType = ""
	rec.missing = nil
	return &Question{record: rec}, nil
}

// Record returns a copy of the wrapped record with its type normalised.
func (q *Question) Record() QuestionRecord {
	return q.record.Clone()
}

// Description returns the question prompt.
func (q *Question) Description() string {
	return q.record.Description
}

// Solution returns the optional explanation.
func (q *Question) Solution() *string {
	return cloneString(q.record.Solution)
}

// ResolvedAnswerSet returns the texts of the correct choices.
// A single index yields a one-element set holding the whole choice text.
func (q *Question) ResolvedAnswerSet() StringSet {
	set := make(StringSet, len(q.record.AnswerIndex.indices))
	for _, i := range q.record.AnswerIndex.indices {
		set[q.record.Choices[i]] = struct{}{}
	}
	return set
}

// ChoiceTextSet returns the set of all choice texts.
func (q *Question) ChoiceTextSet() StringSet {
	return NewStringSet(q.record.Choices...)
}

// IsEquivalentTo reports whether both questions carry the same type, description,
// correct answer texts and optional annotations. Choice order and the raw form of
// answer_idx are not compared.
func (q *Question) IsEquivalentTo(other *Question) bool {
	a, b := q.record, other.record
	return a.Type == b.Type &&
		a.Description == b.Description &&
		q.ResolvedAnswerSet().Equal(other.ResolvedAnswerSet()) &&
		optionalEqual(a.Solution, b.Solution) &&
		optionalEqual(a.Note, b.Note) &&
		optionalEqual(a.Tag, b.Tag)
}

// optionalEqual treats absent as equal only to absent.
func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

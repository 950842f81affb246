package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerIndex points at the correct choice(s) of a question.
// It is either a single index or a list of indices; the form is kept on re-encode.
type AnswerIndex struct {
	multi   bool
	indices []int
}

// SingleAnswer returns an AnswerIndex holding one index.
func SingleAnswer(i int) AnswerIndex {
	return AnswerIndex{indices: []int{i}}
}

// MultiAnswer returns an AnswerIndex holding a list of indices.
func MultiAnswer(indices ...int) AnswerIndex {
	cp := make([]int, len(indices))
	copy(cp, indices)
	return AnswerIndex{multi: true, indices: cp}
}

// IsSingle reports whether the index was given as a single integer.
func (a AnswerIndex) IsSingle() bool {
	return !a.multi && len(a.indices) == 1
}

// IsZero reports whether no index has been set.
func (a AnswerIndex) IsZero() bool {
	return !a.multi && len(a.indices) == 0
}

// Indices returns a copy of the indices.
func (a AnswerIndex) Indices() []int {
	cp := make([]int, len(a.indices))
	copy(cp, a.indices)
	return cp
}

// MarshalJSON encodes a single index as a number and a list as an array.
func (a AnswerIndex) MarshalJSON() ([]byte, error) {
	if a.IsSingle() {
		return json.Marshal(a.indices[0])
	}
	if a.indices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.indices)
}

// UnmarshalJSON accepts a number or an array of numbers.
func (a *AnswerIndex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []int
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("answer_idx: %w", err)
		}
		*a = MultiAnswer(list...)
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("answer_idx: %w", err)
	}
	*a = SingleAnswer(single)
	return nil
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a collaborator was not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown export format or arbiter kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidQuestion indicates a question record failed validation.
	// The concrete error is an *InvalidQuestionError.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrMergeConflict indicates two records disagree on an annotation that
	// cannot be combined automatically and nobody was available to choose.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrInvalidChoice indicates an arbitration answer other than keep-first or keep-second.
	ErrInvalidChoice = errors.New("invalid arbitration choice")
)

// InvalidQuestionError describes why a record was rejected.
type InvalidQuestionError struct {
	// Description is the prompt of the offending record, if any.
	Description string

	// Field is the first field found at fault.
	Field string

	// Reason is a human-readable explanation.
	Reason string
}

// Error implements error.
func (e *InvalidQuestionError) Error() string {
	desc := e.Description
	if len([]rune(desc)) > 40 {
		desc = string([]rune(desc)[:40]) + "..."
	}
	return fmt.Sprintf("invalid question %q: %s", desc, e.Reason)
}

// Is matches ErrInvalidQuestion.
func (e *InvalidQuestionError) Is(target error) bool {
	return target == ErrInvalidQuestion
}

// MergeConflictError reports the annotation fields two records disagree on.
type MergeConflictError struct {
	Description string
	Fields      []string
}

// Error implements error.
func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict on %q: fields %s differ", e.Description, strings.Join(e.Fields, ", "))
}

// Is matches ErrMergeConflict.
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

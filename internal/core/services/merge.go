package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// SolutionSeparator joins two different solutions of the same question.
const SolutionSeparator = "\n\n此题的其他解释：\n"

// MergeOutcome describes how MergeQuestions produced its record.
type MergeOutcome struct {
	// Record is the combined or chosen record.
	Record domain.QuestionRecord

	// Arbitrated is true when an operator chose one side of a hard conflict.
	Arbitrated bool

	// Choice is the operator's token when Arbitrated is true.
	Choice domain.ResolutionChoice

	// Fields lists the conflicting annotations when Arbitrated is true, or the
	// annotations that differed and were combined otherwise.
	Fields []string
}

// MergeQuestions combines two same-description questions that are not equivalent.
//
// Type, choices, answer index and description are taken from first unchecked.
// Note and tag keep the present value when only one side has one; if both are
// present and differ the conflict is put to resolver and the chosen record is
// returned verbatim. Solutions never conflict: two different solutions are
// concatenated around SolutionSeparator.
func MergeQuestions(
	ctx context.Context,
	first, second *domain.Question,
	resolver driven.ConflictResolver,
) (*MergeOutcome, error) {
	a, b := first.Record(), second.Record()

	var conflicts, combined []string

	note, ok := reconcileAnnotation(a.Note, b.Note)
	if !ok {
		conflicts = append(conflicts, domain.FieldNote)
	}
	tag, ok := reconcileAnnotation(a.Tag, b.Tag)
	if !ok {
		conflicts = append(conflicts, domain.FieldTag)
	}

	if len(conflicts) > 0 {
		return arbitrate(ctx, domain.MergeConflict{First: a, Second: b, Fields: conflicts}, resolver)
	}

	for _, f := range []struct {
		name string
		a, b *string
	}{
		{domain.FieldSolution, a.Solution, b.Solution},
		{domain.FieldNote, a.Note, b.Note},
		{domain.FieldTag, a.Tag, b.Tag},
	} {
		if !sameOptional(f.a, f.b) {
			combined = append(combined, f.name)
		}
	}

	merged := domain.QuestionRecord{
		Description: a.Description,
		Type:        a.Type,
		Choices:     a.Choices,
		AnswerIndex: a.AnswerIndex,
		Solution:    reconcileSolution(a.Solution, b.Solution),
		Note:        note,
		Tag:         tag,
	}
	return &MergeOutcome{Record: merged, Fields: combined}, nil
}

// arbitrate blocks on the resolver and returns the chosen record verbatim.
func arbitrate(
	ctx context.Context,
	conflict domain.MergeConflict,
	resolver driven.ConflictResolver,
) (*MergeOutcome, error) {
	logger.Warn("hard conflict on %q: %v differ on both sides", conflict.Description(), conflict.Fields)

	if resolver == nil {
		return nil, &domain.MergeConflictError{Description: conflict.Description(), Fields: conflict.Fields}
	}

	choice, err := resolver.Resolve(ctx, conflict)
	if err != nil {
		return nil, fmt.Errorf("resolving conflict on %q: %w", conflict.Description(), err)
	}

	chosen, err := conflict.Pick(choice)
	if err != nil {
		return nil, fmt.Errorf("resolving conflict on %q: %w", conflict.Description(), err)
	}

	logger.Notice("kept record %s for %q", choice, conflict.Description())
	return &MergeOutcome{
		Record:     chosen,
		Arbitrated: true,
		Choice:     choice,
		Fields:     conflict.Fields,
	}, nil
}

// reconcileAnnotation applies the note/tag rule. ok is false on a hard conflict.
func reconcileAnnotation(a, b *string) (*string, bool) {
	switch {
	case sameOptional(a, b):
		return a, true
	case a == nil:
		return b, true
	case b == nil:
		return a, true
	default:
		return nil, false
	}
}

// reconcileSolution concatenates two present solutions; otherwise it behaves
// like reconcileAnnotation, which cannot fail once both are not present.
func reconcileSolution(a, b *string) *string {
	if a != nil && b != nil {
		if *a == *b {
			return a
		}
		joined := *a + SolutionSeparator + *b
		return &joined
	}
	if a != nil {
		return a
	}
	return b
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

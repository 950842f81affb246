package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// scriptedResolver answers conflicts from a fixed list and records what it saw.
type scriptedResolver struct {
	answers []domain.ResolutionChoice
	err     error
	seen    []domain.MergeConflict
}

func (r *scriptedResolver) Resolve(_ context.Context, c domain.MergeConflict) (domain.ResolutionChoice, error) {
	r.seen = append(r.seen, c)
	if r.err != nil {
		return "", r.err
	}
	if len(r.answers) == 0 {
		return "", errors.New("no scripted answer left")
	}
	next := r.answers[0]
	r.answers = r.answers[1:]
	return next, nil
}

func quizRecord(desc string) domain.QuestionRecord {
	return domain.QuestionRecord{
		Description: desc,
		Type:        domain.QuestionTypeSingle,
		Choices:     []string{"甲", "乙", "丙"},
		AnswerIndex: domain.SingleAnswer(0),
	}
}

func mustWrap(t *testing.T, rec domain.QuestionRecord) *domain.Question {
	t.Helper()
	q, err := domain.NewQuestion(rec)
	require.NoError(t, err)
	return q
}

func TestMergeQuestions_SolutionsAreConcatenated(t *testing.T) {
	a := quizRecord("Q1")
	a.Solution = domain.StringPtr("A")
	b := quizRecord("Q1")
	b.Solution = domain.StringPtr("B")

	out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), nil)

	require.NoError(t, err)
	require.NotNil(t, out.Record.Solution)
	assert.Equal(t, "A\n\n此题的其他解释：\nB", *out.Record.Solution)
	assert.False(t, out.Arbitrated)
	assert.Equal(t, []string{domain.FieldSolution}, out.Fields)
}

func TestMergeQuestions_AbsentNeverOverridesPresent(t *testing.T) {
	tests := []struct {
		name   string
		first  func(r *domain.QuestionRecord)
		second func(r *domain.QuestionRecord)
		check  func(t *testing.T, r domain.QuestionRecord)
	}{
		{
			name:   "note on first",
			first:  func(r *domain.QuestionRecord) { r.Note = domain.StringPtr("x") },
			second: func(r *domain.QuestionRecord) {},
			check: func(t *testing.T, r domain.QuestionRecord) {
				require.NotNil(t, r.Note)
				assert.Equal(t, "x", *r.Note)
			},
		},
		{
			name:   "note on second",
			first:  func(r *domain.QuestionRecord) {},
			second: func(r *domain.QuestionRecord) { r.Note = domain.StringPtr("x") },
			check: func(t *testing.T, r domain.QuestionRecord) {
				require.NotNil(t, r.Note)
				assert.Equal(t, "x", *r.Note)
			},
		},
		{
			name:   "empty tag is present",
			first:  func(r *domain.QuestionRecord) {},
			second: func(r *domain.QuestionRecord) { r.Tag = domain.StringPtr("") },
			check: func(t *testing.T, r domain.QuestionRecord) {
				require.NotNil(t, r.Tag)
				assert.Equal(t, "", *r.Tag)
			},
		},
		{
			name:   "solution on second only",
			first:  func(r *domain.QuestionRecord) {},
			second: func(r *domain.QuestionRecord) { r.Solution = domain.StringPtr("why") },
			check: func(t *testing.T, r domain.QuestionRecord) {
				require.NotNil(t, r.Solution)
				assert.Equal(t, "why", *r.Solution)
			},
		},
		{
			name:   "equal solutions are not repeated",
			first:  func(r *domain.QuestionRecord) { r.Solution = domain.StringPtr("s"); r.Tag = domain.StringPtr("t") },
			second: func(r *domain.QuestionRecord) { r.Solution = domain.StringPtr("s") },
			check: func(t *testing.T, r domain.QuestionRecord) {
				require.NotNil(t, r.Solution)
				assert.Equal(t, "s", *r.Solution)
				require.NotNil(t, r.Tag)
				assert.Equal(t, "t", *r.Tag)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := quizRecord("Q1"), quizRecord("Q1")
			tt.first(&a)
			tt.second(&b)

			out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), nil)

			require.NoError(t, err)
			assert.False(t, out.Arbitrated)
			tt.check(t, out.Record)
		})
	}
}

func TestMergeQuestions_KeepsStructuralFieldsOfFirst(t *testing.T) {
	a := quizRecord("Q1")
	a.Note = domain.StringPtr("n")
	b := quizRecord("Q1")
	b.Choices = []string{"丙", "甲", "乙"}
	b.AnswerIndex = domain.SingleAnswer(1)

	out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), nil)

	require.NoError(t, err)
	assert.Equal(t, a.Choices, out.Record.Choices)
	assert.Equal(t, a.AnswerIndex, out.Record.AnswerIndex)
	assert.Equal(t, a.Type, out.Record.Type)
}

func TestMergeQuestions_HardConflictEscalates(t *testing.T) {
	tests := []struct {
		name     string
		choice   domain.ResolutionChoice
		expected string
	}{
		{"keep first", domain.KeepFirst, "chapter-1"},
		{"keep second", domain.KeepSecond, "chapter-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := quizRecord("Q1")
			a.Tag = domain.StringPtr("chapter-1")
			a.Solution = domain.StringPtr("only on a")
			b := quizRecord("Q1")
			b.Tag = domain.StringPtr("chapter-2")
			b.Note = domain.StringPtr("only on b")
			resolver := &scriptedResolver{answers: []domain.ResolutionChoice{tt.choice}}

			out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), resolver)

			require.NoError(t, err)
			require.Len(t, resolver.seen, 1)
			assert.Equal(t, []string{domain.FieldTag}, resolver.seen[0].Fields)
			assert.True(t, out.Arbitrated)
			assert.Equal(t, tt.choice, out.Choice)
			require.NotNil(t, out.Record.Tag)
			assert.Equal(t, tt.expected, *out.Record.Tag)

			// The chosen record is returned verbatim, with no annotations carried over.
			if tt.choice == domain.KeepFirst {
				assert.Equal(t, a, out.Record)
			} else {
				assert.Equal(t, b, out.Record)
			}
		})
	}
}

func TestMergeQuestions_BothAnnotationsConflict(t *testing.T) {
	a := quizRecord("Q1")
	a.Note, a.Tag = domain.StringPtr("n1"), domain.StringPtr("t1")
	b := quizRecord("Q1")
	b.Note, b.Tag = domain.StringPtr("n2"), domain.StringPtr("t2")
	resolver := &scriptedResolver{answers: []domain.ResolutionChoice{domain.KeepSecond}}

	out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), resolver)

	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldNote, domain.FieldTag}, out.Fields)
	assert.Equal(t, b, out.Record)
}

func TestMergeQuestions_NoResolver(t *testing.T) {
	a := quizRecord("Q1")
	a.Note = domain.StringPtr("x")
	b := quizRecord("Q1")
	b.Note = domain.StringPtr("y")

	out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), nil)

	assert.Nil(t, out)
	require.ErrorIs(t, err, domain.ErrMergeConflict)
	var conflict *domain.MergeConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{domain.FieldNote}, conflict.Fields)
}

func TestMergeQuestions_InvalidChoiceFailsLoudly(t *testing.T) {
	a := quizRecord("Q1")
	a.Note = domain.StringPtr("x")
	b := quizRecord("Q1")
	b.Note = domain.StringPtr("y")
	resolver := driven.ConflictResolverFunc(func(context.Context, domain.MergeConflict) (domain.ResolutionChoice, error) {
		return "c", nil
	})

	out, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), resolver)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestMergeQuestions_ResolverError(t *testing.T) {
	a := quizRecord("Q1")
	a.Tag = domain.StringPtr("x")
	b := quizRecord("Q1")
	b.Tag = domain.StringPtr("y")
	resolver := &scriptedResolver{err: context.Canceled}

	_, err := MergeQuestions(context.Background(), mustWrap(t, a), mustWrap(t, b), resolver)

	assert.ErrorIs(t, err, context.Canceled)
}

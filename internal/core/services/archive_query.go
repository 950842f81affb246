package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// Ensure ArchiveQueryService implements the interface.
var _ driving.ArchiveQueryService = (*ArchiveQueryService)(nil)

// DefaultSearchLimit caps Search when no limit is given.
const DefaultSearchLimit = 10

// ArchiveQueryService answers read-only queries over the curated archive.
type ArchiveQueryService struct {
	archive driven.ArchiveStore
}

// NewArchiveQueryService creates a new archive query service.
func NewArchiveQueryService(archive driven.ArchiveStore) *ArchiveQueryService {
	return &ArchiveQueryService{archive: archive}
}

// Parts lists part labels with their question counts.
func (s *ArchiveQueryService) Parts(ctx context.Context) ([]driving.PartSummary, error) {
	batches, err := loadCurated(ctx, s.archive)
	if err != nil {
		return nil, err
	}
	out := make([]driving.PartSummary, 0, len(batches))
	for _, b := range batches {
		out = append(out, driving.PartSummary{Part: b.Part, Questions: len(b.Questions)})
	}
	return out, nil
}

// Search finds questions whose description contains query, case-insensitively.
// Records that fail validation are skipped.
func (s *ArchiveQueryService) Search(ctx context.Context, query string, limit int) ([]driving.QuestionView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	batches, err := loadCurated(ctx, s.archive)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var out []driving.QuestionView
	for _, b := range batches {
		for _, rec := range b.Questions {
			if !strings.Contains(strings.ToLower(rec.Description), needle) {
				continue
			}
			q, err := domain.NewQuestion(rec)
			if err != nil {
				continue
			}
			out = append(out, NewQuestionView(b.Part, q))
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Part returns the valid questions of one part.
func (s *ArchiveQueryService) Part(ctx context.Context, label string) ([]driving.QuestionView, error) {
	batches, err := loadCurated(ctx, s.archive)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		if b.Part != label {
			continue
		}
		out := make([]driving.QuestionView, 0, len(b.Questions))
		for _, rec := range b.Questions {
			q, err := domain.NewQuestion(rec)
			if err != nil {
				continue
			}
			out = append(out, NewQuestionView(b.Part, q))
		}
		return out, nil
	}
	return nil, fmt.Errorf("part %q: %w", label, domain.ErrNotFound)
}

// NewQuestionView projects a question onto its export-facing shape.
// Choices keep source order; answers are sorted.
func NewQuestionView(part string, q *domain.Question) driving.QuestionView {
	rec := q.Record()
	return driving.QuestionView{
		Part:        part,
		Description: rec.Description,
		Type:        rec.Type.String(),
		Choices:     rec.Choices,
		Answers:     q.ResolvedAnswerSet().Sorted(),
		Solution:    rec.Solution,
	}
}

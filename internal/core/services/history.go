package services

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past deduplication runs from the journal.
type HistoryService struct {
	journal driven.RunJournal
}

// NewHistoryService creates a new history service.
func NewHistoryService(journal driven.RunJournal) *HistoryService {
	return &HistoryService{journal: journal}
}

// Runs returns recent runs, newest first.
func (s *HistoryService) Runs(ctx context.Context, limit int) ([]domain.DedupeRun, error) {
	if s.journal == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.journal.ListRuns(ctx, limit)
}

// Run returns one run and its decisions.
func (s *HistoryService) Run(ctx context.Context, id string) (*domain.DedupeRun, []domain.MergeDecision, error) {
	if s.journal == nil {
		return nil, nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	run, err := s.journal.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	decisions, err := s.journal.ListDecisions(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, decisions, nil
}

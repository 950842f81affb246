package driving

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// HistoryService exposes the run journal.
type HistoryService interface {
	// Runs returns recent runs, newest first.
	Runs(ctx context.Context, limit int) ([]domain.DedupeRun, error)

	// Run returns one run and its decisions.
	Run(ctx context.Context, id string) (*domain.DedupeRun, []domain.MergeDecision, error)
}

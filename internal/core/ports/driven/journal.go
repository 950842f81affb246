package driven

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// RunJournal records deduplication runs and every collision decision.
// Backed by SQLite so decisions survive between runs.
type RunJournal interface {
	// SaveRun stores or updates a run summary.
	SaveRun(ctx context.Context, run domain.DedupeRun) error

	// SaveDecision appends a decision to its run.
	SaveDecision(ctx context.Context, decision domain.MergeDecision) error

	// GetRun retrieves a run by ID. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.DedupeRun, error)

	// ListRuns returns the most recent runs first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]domain.DedupeRun, error)

	// ListDecisions returns a run's decisions in order.
	ListDecisions(ctx context.Context, runID string) ([]domain.MergeDecision, error)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// Ensure RunJournal implements the interface.
var _ driven.RunJournal = (*RunJournal)(nil)

// RunJournal is an in-memory implementation of driven.RunJournal.
type RunJournal struct {
	mu        sync.RWMutex
	runs      map[string]domain.DedupeRun
	decisions map[string][]domain.MergeDecision
}

// NewRunJournal creates a new in-memory run journal.
func NewRunJournal() *RunJournal {
	return &RunJournal{
		runs:      make(map[string]domain.DedupeRun),
		decisions: make(map[string][]domain.MergeDecision),
	}
}

// SaveRun stores or updates a run.
func (j *RunJournal) SaveRun(_ context.Context, run domain.DedupeRun) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs[run.ID] = run
	return nil
}

// SaveDecision appends a decision to its run.
func (j *RunJournal) SaveDecision(_ context.Context, decision domain.MergeDecision) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.runs[decision.RunID]; !ok {
		return domain.ErrNotFound
	}
	j.decisions[decision.RunID] = append(j.decisions[decision.RunID], decision)
	return nil
}

// GetRun retrieves a run by ID.
func (j *RunJournal) GetRun(_ context.Context, id string) (*domain.DedupeRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	run, ok := j.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first.
func (j *RunJournal) ListRuns(_ context.Context, limit int) ([]domain.DedupeRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	runs := make([]domain.DedupeRun, 0, len(j.runs))
	for _, r := range j.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(a, b int) bool {
		return runs[a].StartedAt.After(runs[b].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// ListDecisions returns a run's decisions in sequence order.
func (j *RunJournal) ListDecisions(_ context.Context, runID string) ([]domain.MergeDecision, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := append([]domain.MergeDecision(nil), j.decisions[runID]...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Seq < out[b].Seq })
	return out, nil
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// Ensure ArchiveStore implements the interface.
var _ driven.ArchiveStore = (*ArchiveStore)(nil)

// ArchiveStore is an in-memory implementation of driven.ArchiveStore.
// Parts are listed in the order they were first saved.
type ArchiveStore struct {
	mu           sync.RWMutex
	order        []string
	parts        map[string]domain.ArchiveBatch
	consolidated []domain.ArchiveBatch
	written      bool
}

// NewArchiveStore creates a new in-memory archive store seeded with batches.
func NewArchiveStore(batches ...domain.ArchiveBatch) *ArchiveStore {
	s := &ArchiveStore{parts: make(map[string]domain.ArchiveBatch)}
	for _, b := range batches {
		s.put(b)
	}
	return s
}

func (s *ArchiveStore) put(b domain.ArchiveBatch) {
	if _, ok := s.parts[b.Part]; !ok {
		s.order = append(s.order, b.Part)
	}
	s.parts[b.Part] = cloneBatch(b)
}

// ListBatches returns every part batch in insertion order.
func (s *ArchiveStore) ListBatches(_ context.Context) ([]domain.ArchiveBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ArchiveBatch, 0, len(s.order))
	for _, part := range s.order {
		out = append(out, cloneBatch(s.parts[part]))
	}
	return out, nil
}

// SaveBatch stores a part batch.
func (s *ArchiveStore) SaveBatch(_ context.Context, batch domain.ArchiveBatch, overwrite bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[batch.Part]; ok && !overwrite {
		return "", fmt.Errorf("part %q: %w", batch.Part, domain.ErrAlreadyExists)
	}
	s.put(batch)
	return "memory://" + batch.Part, nil
}

// LoadConsolidated returns the last consolidated archive.
func (s *ArchiveStore) LoadConsolidated(_ context.Context) ([]domain.ArchiveBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return nil, domain.ErrNotFound
	}
	return cloneBatches(s.consolidated), nil
}

// SaveConsolidated stores the consolidated archive.
func (s *ArchiveStore) SaveConsolidated(_ context.Context, batches []domain.ArchiveBatch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consolidated = cloneBatches(batches)
	s.written = true
	return "memory://consolidated", nil
}

func cloneBatches(batches []domain.ArchiveBatch) []domain.ArchiveBatch {
	out := make([]domain.ArchiveBatch, len(batches))
	for i, b := range batches {
		out[i] = cloneBatch(b)
	}
	return out
}

func cloneBatch(b domain.ArchiveBatch) domain.ArchiveBatch {
	out := domain.ArchiveBatch{Part: b.Part, Questions: make([]domain.QuestionRecord, len(b.Questions))}
	for i, q := range b.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

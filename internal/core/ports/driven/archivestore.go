package driven

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// ArchiveStore persists archive batches.
// Backed by a directory of per-part JSON files plus one consolidated file.
type ArchiveStore interface {
	// ListBatches loads every part batch in the archive, in a stable order.
	ListBatches(ctx context.Context) ([]domain.ArchiveBatch, error)

	// SaveBatch writes one part batch and returns where it was written.
	// Returns domain.ErrAlreadyExists if the part exists and overwrite is false.
	SaveBatch(ctx context.Context, batch domain.ArchiveBatch, overwrite bool) (string, error)

	// LoadConsolidated reads the consolidated archive.
	// Returns domain.ErrNotFound if it has not been written yet.
	LoadConsolidated(ctx context.Context) ([]domain.ArchiveBatch, error)

	// SaveConsolidated writes the consolidated archive and returns its location.
	SaveConsolidated(ctx context.Context, batches []domain.ArchiveBatch) (string, error)
}

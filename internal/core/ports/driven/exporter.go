package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// Exporter renders archive batches into a document format.
type Exporter interface {
	// Format is the name used to select this exporter (e.g. "xlsx").
	Format() string

	// Extension is the conventional file extension including the dot.
	Extension() string

	// Export writes batches to w.
	Export(ctx context.Context, w io.Writer, batches []domain.ArchiveBatch) error
}

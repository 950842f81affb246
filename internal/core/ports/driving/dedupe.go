package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// DedupeService folds archive batches into one record per description.
type DedupeService interface {
	// Dedupe folds batches in order and re-partitions the result by part.
	// Hard conflicts block on the configured resolver.
	Dedupe(ctx context.Context, batches []domain.ArchiveBatch) (*DedupeReport, error)

	// DedupeArchive loads every part from the archive, deduplicates them and
	// writes the consolidated archive.
	DedupeArchive(ctx context.Context) (*DedupeReport, error)
}

// DedupeReport is the outcome of a deduplication run.
type DedupeReport struct {
	// RunID identifies the run in the journal.
	RunID string

	// Batches is the re-partitioned output.
	Batches []domain.ArchiveBatch

	// Decisions are the collision outcomes in order.
	Decisions []domain.MergeDecision

	// Output is where the consolidated archive was written; empty for in-memory runs.
	Output string

	// Stats summarise the run.
	Stats DedupeStats
}

// DedupeStats provides metrics about a deduplication run.
type DedupeStats struct {
	// Inputs is the number of records read.
	Inputs int

	// Unique is the number of records in the output.
	Unique int

	// Duplicates counts incoming records dropped as equivalent.
	Duplicates int

	// Merged counts automatic merges.
	Merged int

	// Conflicts counts hard conflicts settled by the operator.
	Conflicts int

	// Parts is the number of output batches.
	Parts int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

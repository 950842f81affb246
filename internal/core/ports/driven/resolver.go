package driven

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// ConflictResolver puts a hard merge conflict to a human and returns their choice.
//
// Resolve blocks until a decision is made or ctx is cancelled. Implementations
// must only return domain.KeepFirst or domain.KeepSecond; invalid operator input
// is asked again, never mapped to a default side.
type ConflictResolver interface {
	Resolve(ctx context.Context, conflict domain.MergeConflict) (domain.ResolutionChoice, error)
}

// ConflictResolverFunc adapts a function to ConflictResolver.
type ConflictResolverFunc func(ctx context.Context, conflict domain.MergeConflict) (domain.ResolutionChoice, error)

// Resolve calls f.
func (f ConflictResolverFunc) Resolve(ctx context.Context, conflict domain.MergeConflict) (domain.ResolutionChoice, error) {
	return f(ctx, conflict)
}

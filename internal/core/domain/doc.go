// Package domain defines the core business entities for quizarc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - QuestionRecord: One quiz question as stored in the archive
//   - Question: A validated record with the equivalence predicate
//   - ArchiveBatch: A chapter ("part") of records
//   - MergeConflict: Two records that need an operator's choice
//   - DedupeRun / MergeDecision: Journal entries for a deduplication run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

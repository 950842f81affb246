package domain

import "time"

// DecisionKind records how a same-description collision was settled.
type DecisionKind string

// Decision kinds.
const (
	// DecisionEquivalent means the incoming record was a verbatim duplicate and was dropped.
	DecisionEquivalent DecisionKind = "equivalent"

	// DecisionMerged means annotations were combined automatically.
	DecisionMerged DecisionKind = "merged"

	// DecisionArbitrated means an operator picked one side of a hard conflict.
	DecisionArbitrated DecisionKind = "arbitrated"
)

// IsValid returns true if the kind is recognised.
func (k DecisionKind) IsValid() bool {
	switch k {
	case DecisionEquivalent, DecisionMerged, DecisionArbitrated:
		return true
	default:
		return false
	}
}

// MergeDecision is one journal entry describing a collision outcome.
type MergeDecision struct {
	// RunID links to the DedupeRun.
	RunID string

	// Seq is the order of the decision within the run, starting at 1.
	Seq int

	// Description is the colliding prompt.
	Description string

	// Part is the part label stored after the decision.
	Part string

	// Kind is how the collision was settled.
	Kind DecisionKind

	// Choice is the operator's token; empty unless Kind is DecisionArbitrated.
	Choice ResolutionChoice

	// Fields lists the conflicting annotations for arbitrated decisions,
	// or the annotations that were combined for merged ones.
	Fields []string

	// DecidedAt is when the decision was made.
	DecidedAt time.Time
}

// DedupeRun summarises one aggregator run.
type DedupeRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time

	// Inputs is the number of records read.
	Inputs int

	// Unique is the number of records written.
	Unique int

	// Duplicates counts incoming records dropped as equivalent.
	Duplicates int

	// Merged counts automatic merges.
	Merged int

	// Conflicts counts arbitrated hard conflicts.
	Conflicts int

	// Output is where the consolidated archive was written, if anywhere.
	Output string
}

// Duration returns how long the run took.
func (r DedupeRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

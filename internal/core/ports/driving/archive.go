package driving

import "context"

// ArchiveQueryService answers read-only questions about the archive.
type ArchiveQueryService interface {
	// Parts lists part labels with their question counts.
	Parts(ctx context.Context) ([]PartSummary, error)

	// Search finds questions whose description contains query.
	Search(ctx context.Context, query string, limit int) ([]QuestionView, error)

	// Part returns the questions filed under one part label.
	// Returns domain.ErrNotFound for an unknown label.
	Part(ctx context.Context, label string) ([]QuestionView, error)
}

// PartSummary is a part label and its size.
type PartSummary struct {
	Part      string
	Questions int
}

// QuestionView is the export-facing shape of a record.
type QuestionView struct {
	Part        string
	Description string
	Type        string
	Choices     []string
	Answers     []string
	Solution    *string
}

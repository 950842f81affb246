package mcp

import (
	"context"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// mockArchiveService is a mock implementation of driving.ArchiveQueryService.
type mockArchiveService struct {
	parts     []driving.PartSummary
	questions []driving.QuestionView
	err       error

	lastQuery string
	lastLimit int
	lastPart  string
}

func (m *mockArchiveService) Parts(_ context.Context) ([]driving.PartSummary, error) {
	return m.parts, m.err
}

func (m *mockArchiveService) Search(_ context.Context, query string, limit int) ([]driving.QuestionView, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.questions, m.err
}

func (m *mockArchiveService) Part(_ context.Context, label string) ([]driving.QuestionView, error) {
	m.lastPart = label
	return m.questions, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs      []domain.DedupeRun
	err       error
	lastLimit int
}

func (m *mockHistoryService) Runs(_ context.Context, limit int) ([]domain.DedupeRun, error) {
	m.lastLimit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Run(_ context.Context, _ string) (*domain.DedupeRun, []domain.MergeDecision, error) {
	return nil, nil, m.err
}

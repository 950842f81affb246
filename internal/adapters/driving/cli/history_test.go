package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

func TestHistoryCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryCmd_ListAndShow(t *testing.T) {
	withNote := question("Q1")
	withNote.Note = domain.StringPtr("易错")
	env := setupTestServices(t,
		domain.ArchiveBatch{Part: "A", Questions: []domain.QuestionRecord{question("Q1")}},
		domain.ArchiveBatch{Part: "B", Questions: []domain.QuestionRecord{withNote}},
	)

	_, err := execute(t, "", "dedupe")
	require.NoError(t, err)

	runs, err := env.journal.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	runID := runs[0].ID

	out, err := execute(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, runID)
	assert.Contains(t, out, "in=2 unique=1 dup=0 merged=1 conflicts=0")

	out, err = execute(t, "", "history", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+runID)
	assert.Contains(t, out, "#1 merged")
	assert.Contains(t, out, "Q1")
	assert.Contains(t, out, "part: B")
	assert.Contains(t, out, "fields: note")
}

func TestHistoryCmd_UnknownRun(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "history", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_TooManyArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "history", "a", "b")

	assert.Error(t, err)
}

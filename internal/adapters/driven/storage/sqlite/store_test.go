package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "journal.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreRecorded(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()
	version, err = store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_InvalidDir(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestRunJournal_SaveAndGetRun(t *testing.T) {
	journal := setupTestStore(t).RunJournal()
	ctx := context.Background()
	started := time.Date(2024, 6, 27, 10, 0, 0, 123456789, time.UTC)

	run := domain.DedupeRun{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Inputs:     10,
		Unique:     7,
		Duplicates: 2,
		Merged:     1,
		Output:     "./archive/deduped.json",
	}
	require.NoError(t, journal.SaveRun(ctx, run))

	got, err := journal.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 2*time.Second, got.Duration())
	assert.Equal(t, 7, got.Unique)
	assert.Equal(t, "./archive/deduped.json", got.Output)

	// Upsert
	run.Conflicts = 3
	require.NoError(t, journal.SaveRun(ctx, run))
	got, err = journal.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Conflicts)
}

func TestRunJournal_GetRun_NotFound(t *testing.T) {
	journal := setupTestStore(t).RunJournal()

	_, err := journal.GetRun(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunJournal_SaveRun_RequiresID(t *testing.T) {
	journal := setupTestStore(t).RunJournal()

	err := journal.SaveRun(context.Background(), domain.DedupeRun{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunJournal_ListRuns(t *testing.T) {
	journal := setupTestStore(t).RunJournal()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, journal.SaveRun(ctx, domain.DedupeRun{ID: "a", StartedAt: base}))
	require.NoError(t, journal.SaveRun(ctx, domain.DedupeRun{ID: "b", StartedAt: base.Add(500 * time.Millisecond)}))
	require.NoError(t, journal.SaveRun(ctx, domain.DedupeRun{ID: "c", StartedAt: base.Add(time.Second)}))

	runs, err := journal.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	assert.True(t, runs[2].FinishedAt.IsZero())

	runs, err = journal.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunJournal_Decisions(t *testing.T) {
	journal := setupTestStore(t).RunJournal()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, journal.SaveRun(ctx, domain.DedupeRun{ID: "run-1", StartedAt: now}))
	require.NoError(t, journal.SaveDecision(ctx, domain.MergeDecision{
		RunID:       "run-1",
		Seq:         2,
		Description: "Q2",
		Part:        "第二章",
		Kind:        domain.DecisionArbitrated,
		Choice:      domain.KeepSecond,
		Fields:      []string{domain.FieldNote, domain.FieldTag},
		DecidedAt:   now,
	}))
	require.NoError(t, journal.SaveDecision(ctx, domain.MergeDecision{
		RunID:       "run-1",
		Seq:         1,
		Description: "Q1",
		Part:        "第一章",
		Kind:        domain.DecisionEquivalent,
		DecidedAt:   now,
	}))

	decisions, err := journal.ListDecisions(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	assert.Equal(t, "Q1", decisions[0].Description)
	assert.Equal(t, domain.DecisionEquivalent, decisions[0].Kind)
	assert.Empty(t, decisions[0].Choice)
	assert.Nil(t, decisions[0].Fields)

	assert.Equal(t, "第二章", decisions[1].Part)
	assert.Equal(t, domain.KeepSecond, decisions[1].Choice)
	assert.Equal(t, []string{"note", "tag"}, decisions[1].Fields)
	assert.True(t, now.Equal(decisions[1].DecidedAt))
}

func TestRunJournal_SaveDecision_Errors(t *testing.T) {
	journal := setupTestStore(t).RunJournal()
	ctx := context.Background()

	err := journal.SaveDecision(ctx, domain.MergeDecision{RunID: "ghost", Seq: 1, Kind: domain.DecisionMerged})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = journal.SaveDecision(ctx, domain.MergeDecision{RunID: "ghost", Seq: 1, Kind: "guessed"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseNullableTime(t *testing.T) {
	assert.True(t, parseNullableTime(nullString("")).IsZero())
	assert.True(t, parseNullableTime(nullString("yesterday")).IsZero())

	ts := time.Date(2024, 6, 27, 1, 2, 3, 0, time.UTC)
	assert.True(t, ts.Equal(parseNullableTime(nullString(formatTime(ts)))))
}

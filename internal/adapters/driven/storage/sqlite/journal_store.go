package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// runJournal implements driven.RunJournal.
type runJournal struct {
	store *Store
}

var _ driven.RunJournal = (*runJournal)(nil)

// SaveRun stores or updates a run summary.
func (j *runJournal) SaveRun(ctx context.Context, run domain.DedupeRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO dedupe_runs (id, started_at, finished_at, inputs, unique_out, duplicates, merged, conflicts, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			inputs = excluded.inputs,
			unique_out = excluded.unique_out,
			duplicates = excluded.duplicates,
			merged = excluded.merged,
			conflicts = excluded.conflicts,
			output = excluded.output
	`, run.ID, formatTime(run.StartedAt), formatNullableTime(run.FinishedAt),
		run.Inputs, run.Unique, run.Duplicates, run.Merged, run.Conflicts,
		nullString(run.Output))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// SaveDecision appends a decision to its run.
// Returns domain.ErrNotFound if the run has not been saved.
func (j *runJournal) SaveDecision(ctx context.Context, d domain.MergeDecision) error {
	if !d.Kind.IsValid() {
		return fmt.Errorf("%w: decision kind %q", domain.ErrInvalidInput, d.Kind)
	}

	var exists int
	err := j.store.db.QueryRowContext(ctx, "SELECT 1 FROM dedupe_runs WHERE id = ?", d.RunID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking run: %w", err)
	}

	fields := d.Fields
	if fields == nil {
		fields = []string{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = j.store.db.ExecContext(ctx, `
		INSERT INTO merge_decisions (run_id, seq, description, part, kind, choice, fields, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO UPDATE SET
			description = excluded.description,
			part = excluded.part,
			kind = excluded.kind,
			choice = excluded.choice,
			fields = excluded.fields,
			decided_at = excluded.decided_at
	`, d.RunID, d.Seq, d.Description, d.Part, string(d.Kind),
		nullString(string(d.Choice)), string(fieldsJSON), formatTime(d.DecidedAt))

	if err != nil {
		return fmt.Errorf("saving decision: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (j *runJournal) GetRun(ctx context.Context, id string) (*domain.DedupeRun, error) {
	row := j.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, inputs, unique_out, duplicates, merged, conflicts, output
		FROM dedupe_runs WHERE id = ?
	`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (j *runJournal) ListRuns(ctx context.Context, limit int) ([]domain.DedupeRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := j.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, inputs, unique_out, duplicates, merged, conflicts, output
		FROM dedupe_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.DedupeRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// ListDecisions returns a run's decisions in sequence order.
func (j *runJournal) ListDecisions(ctx context.Context, runID string) ([]domain.MergeDecision, error) {
	rows, err := j.store.db.QueryContext(ctx, `
		SELECT run_id, seq, description, part, kind, choice, fields, decided_at
		FROM merge_decisions
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []domain.MergeDecision //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.MergeDecision
		var kind, fieldsJSON string
		var choice, decidedAt sql.NullString
		if err := rows.Scan(&d.RunID, &d.Seq, &d.Description, &d.Part, &kind,
			&choice, &fieldsJSON, &decidedAt); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		d.Kind = domain.DecisionKind(kind)
		d.Choice = domain.ResolutionChoice(choice.String)
		d.DecidedAt = parseNullableTime(decidedAt)
		if err := json.Unmarshal([]byte(fieldsJSON), &d.Fields); err != nil {
			return nil, fmt.Errorf("unmarshalling fields: %w", err)
		}
		if len(d.Fields) == 0 {
			d.Fields = nil
		}
		decisions = append(decisions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decisions: %w", err)
	}

	return decisions, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans a dedupe_runs row.
func scanRun(row rowScanner) (*domain.DedupeRun, error) {
	var run domain.DedupeRun
	var startedAt, finishedAt, output sql.NullString

	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.Inputs, &run.Unique,
		&run.Duplicates, &run.Merged, &run.Conflicts, &output); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.StartedAt = parseNullableTime(startedAt)
	run.FinishedAt = parseNullableTime(finishedAt)
	run.Output = output.String
	return &run, nil
}

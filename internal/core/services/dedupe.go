package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// Ensure DedupeService implements the interface.
var _ driving.DedupeService = (*DedupeService)(nil)

// DedupeService folds archive batches into one record per description.
type DedupeService struct {
	archive  driven.ArchiveStore
	resolver driven.ConflictResolver
	journal  driven.RunJournal
	now      func() time.Time
	newID    func() string
}

// NewDedupeService creates a deduplication service.
// archive is needed only by DedupeArchive. journal may be nil.
func NewDedupeService(
	archive driven.ArchiveStore,
	resolver driven.ConflictResolver,
	journal driven.RunJournal,
) *DedupeService {
	return &DedupeService{
		archive:  archive,
		resolver: resolver,
		journal:  journal,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// entry is a value of the description-keyed fold.
type entry struct {
	part     string
	question *domain.Question
}

// fold is the transient description -> (part, question) mapping of one run.
// Keys keep first-insertion order; replacing a value does not move its key.
type fold struct {
	order   []string
	entries map[string]entry
}

func newFold() *fold {
	return &fold{entries: make(map[string]entry)}
}

func (f *fold) get(desc string) (entry, bool) {
	e, ok := f.entries[desc]
	return e, ok
}

func (f *fold) put(desc string, e entry) {
	if _, ok := f.entries[desc]; !ok {
		f.order = append(f.order, desc)
	}
	f.entries[desc] = e
}

// partition re-groups the fold by part label in first-seen order.
func (f *fold) partition() []domain.ArchiveBatch {
	var batches []domain.ArchiveBatch
	index := make(map[string]int)
	for _, desc := range f.order {
		e := f.entries[desc]
		i, ok := index[e.part]
		if !ok {
			i = len(batches)
			index[e.part] = i
			batches = append(batches, domain.ArchiveBatch{Part: e.part})
		}
		batches[i].Questions = append(batches[i].Questions, e.question.Record())
	}
	return batches
}

// Dedupe folds batches in order and re-partitions the result by part.
//
// A description seen for the first time is stored with its batch's part.
// A repeat that is equivalent to the stored record is dropped. A repeat that
// is not equivalent is merged, incoming record first, and the merged record is
// stored under the incoming batch's part label.
//
// Any invalid record aborts the run and no output is returned.
func (s *DedupeService) Dedupe(ctx context.Context, batches []domain.ArchiveBatch) (*driving.DedupeReport, error) {
	started := s.now()
	runID := s.newID()
	logger.Section("Dedupe")
	logger.Debug("run %s: %d batches, %d records", runID, len(batches), domain.CountQuestions(batches))

	report := &driving.DedupeReport{RunID: runID}
	f := newFold()
	seq := 0

	for _, batch := range batches {
		for i, rec := range batch.Questions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			report.Stats.Inputs++

			incoming, err := domain.NewQuestion(rec)
			if err != nil {
				return nil, fmt.Errorf("part %q, question %d: %w", batch.Part, i+1, err)
			}

			desc := incoming.Description()
			stored, ok := f.get(desc)
			if !ok {
				f.put(desc, entry{part: batch.Part, question: incoming})
				continue
			}

			seq++
			decision := domain.MergeDecision{
				RunID:       runID,
				Seq:         seq,
				Description: desc,
				Part:        stored.part,
				DecidedAt:   s.now(),
			}

			if incoming.IsEquivalentTo(stored.question) {
				logger.Debug("duplicate dropped: %q (part %q)", desc, batch.Part)
				decision.Kind = domain.DecisionEquivalent
				report.Stats.Duplicates++
				report.Decisions = append(report.Decisions, decision)
				continue
			}

			outcome, err := MergeQuestions(ctx, incoming, stored.question, s.resolver)
			if err != nil {
				return nil, err
			}
			merged, err := domain.NewQuestion(outcome.Record)
			if err != nil {
				return nil, fmt.Errorf("merged record for %q: %w", desc, err)
			}

			if stored.part != batch.Part {
				logger.Notice("%q moves from part %q to %q", desc, stored.part, batch.Part)
			}
			f.put(desc, entry{part: batch.Part, question: merged})

			decision.Part = batch.Part
			decision.Fields = outcome.Fields
			decision.DecidedAt = s.now()
			if outcome.Arbitrated {
				decision.Kind = domain.DecisionArbitrated
				decision.Choice = outcome.Choice
				report.Stats.Conflicts++
			} else {
				decision.Kind = domain.DecisionMerged
				report.Stats.Merged++
				logger.Notice("merged %q (%v)", desc, outcome.Fields)
			}
			report.Decisions = append(report.Decisions, decision)
		}
	}

	report.Batches = f.partition()
	report.Stats.Unique = len(f.order)
	report.Stats.Parts = len(report.Batches)
	report.Stats.Elapsed = s.now().Sub(started)

	logger.Info("run %s: %d in, %d unique, %d duplicates, %d merged, %d conflicts",
		runID, report.Stats.Inputs, report.Stats.Unique, report.Stats.Duplicates,
		report.Stats.Merged, report.Stats.Conflicts)

	return report, nil
}

// DedupeArchive loads every part from the archive, deduplicates them, writes
// the consolidated archive and records the run in the journal.
func (s *DedupeService) DedupeArchive(ctx context.Context) (*driving.DedupeReport, error) {
	if s.archive == nil {
		return nil, domain.ErrNotImplemented
	}

	started := s.now()
	batches, err := s.archive.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading archive: %w", err)
	}

	report, err := s.Dedupe(ctx, batches)
	if err != nil {
		return nil, err
	}

	out, err := s.archive.SaveConsolidated(ctx, report.Batches)
	if err != nil {
		return nil, fmt.Errorf("writing consolidated archive: %w", err)
	}
	report.Output = out
	logger.Notice("wrote deduplicated archive to %s", out)

	if err := s.record(ctx, started, report); err != nil {
		// The archive is already written; a journal failure must not hide that.
		logger.Warn("recording run %s: %v", report.RunID, err)
	}

	return report, nil
}

// record writes the run and its decisions to the journal, if configured.
func (s *DedupeService) record(ctx context.Context, started time.Time, report *driving.DedupeReport) error {
	if s.journal == nil {
		return nil
	}

	run := domain.DedupeRun{
		ID:         report.RunID,
		StartedAt:  started,
		FinishedAt: s.now(),
		Inputs:     report.Stats.Inputs,
		Unique:     report.Stats.Unique,
		Duplicates: report.Stats.Duplicates,
		Merged:     report.Stats.Merged,
		Conflicts:  report.Stats.Conflicts,
		Output:     report.Output,
	}
	if err := s.journal.SaveRun(ctx, run); err != nil {
		return err
	}
	for _, d := range report.Decisions {
		if err := s.journal.SaveDecision(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

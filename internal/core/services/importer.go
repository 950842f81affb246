package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService turns raw dumps into part files.
type ImportService struct {
	archive        driven.ArchiveStore
	titles         driven.TitleLookup
	markIncomplete bool
}

// NewImportService creates a new import service.
// titles may be nil, in which case every capture test ID is unknown.
func NewImportService(archive driven.ArchiveStore, titles driven.TitleLookup, markIncomplete bool) *ImportService {
	return &ImportService{
		archive:        archive,
		titles:         titles,
		markIncomplete: markIncomplete,
	}
}

// ImportFile imports one raw JSON dump.
func (s *ImportService) ImportFile(ctx context.Context, path string, opts driving.ImportOptions) (*driving.ImportResult, error) {
	if s.archive == nil {
		return nil, domain.ErrNotImplemented
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, batch, err := s.decode(path, data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.Source = path

	out, err := s.archive.SaveBatch(ctx, batch, opts.Overwrite)
	if err != nil {
		return nil, fmt.Errorf("saving part %q: %w", batch.Part, err)
	}
	result.Path = out

	logger.Notice("imported %d questions into %s", result.Questions, out)
	return result, nil
}

// ImportFiles imports several dumps in order, stopping at the first error.
func (s *ImportService) ImportFiles(ctx context.Context, paths []string, opts driving.ImportOptions) ([]driving.ImportResult, error) {
	results := make([]driving.ImportResult, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := s.ImportFile(ctx, p, opts)
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// decode recognises a capture dump or a plain question array and builds the batch.
func (s *ImportService) decode(source string, data []byte, opts driving.ImportOptions) (*driving.ImportResult, domain.ArchiveBatch, error) {
	result := &driving.ImportResult{}
	var batch domain.ArchiveBatch

	var questions []domain.QuestionRecord
	part := strings.TrimSpace(opts.Part)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && domain.IsCaptureDump(obj) {
		logger.Info("capture dump detected")
		var dump domain.CaptureDump
		if err := json.Unmarshal(data, &dump); err != nil {
			return nil, batch, fmt.Errorf("%w: malformed capture dump: %v", domain.ErrInvalidInput, err)
		}
		label, warnings := s.captureLabel(dump)
		result.FromCapture = true
		result.Warnings = warnings
		if part == "" {
			part = label
		}
		questions = dump.Content
	} else {
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, batch, fmt.Errorf("%w: expected a capture dump or a question array: %v", domain.ErrInvalidInput, err)
		}
		if part == "" && opts.AskPart != nil {
			answer, err := opts.AskPart(source)
			if err != nil {
				return nil, batch, fmt.Errorf("asking for part label: %w", err)
			}
			part = strings.TrimSpace(answer)
		}
	}

	if part == "" {
		return nil, batch, fmt.Errorf("%w: part label is required", domain.ErrInvalidInput)
	}

	kept := make([]domain.QuestionRecord, 0, len(questions))
	for i, q := range questions {
		if _, err := domain.NewQuestion(q); err != nil {
			// The capture script marks questions it could not classify with
			// type -1; those are dropped rather than failing the whole dump.
			var invalid *domain.InvalidQuestionError
			if result.FromCapture && errors.As(err, &invalid) && invalid.Field == domain.FieldType {
				msg := fmt.Sprintf("question %d skipped: %s", i+1, invalid.Reason)
				logger.Warn("%s", msg)
				result.Warnings = append(result.Warnings, msg)
				continue
			}
			return nil, batch, fmt.Errorf("question %d: %w", i+1, err)
		}
		kept = append(kept, q)
	}
	questions = kept

	batch = domain.ArchiveBatch{Part: part, Questions: questions}
	result.Part = part
	result.Questions = len(questions)
	return result, batch, nil
}

// captureLabel derives a part label from the dump's test ID and score.
func (s *ImportService) captureLabel(dump domain.CaptureDump) (string, []string) {
	var label strings.Builder
	var warnings []string

	if !dump.Summary.IsFullScore() {
		msg := "dump does not carry a full score; answers may be wrong"
		logger.Warn("%s", msg)
		warnings = append(warnings, msg)
		if s.markIncomplete {
			label.WriteString(domain.IncompleteScoreMark)
		}
	}

	var title string
	var ok bool
	if s.titles != nil {
		title, ok = s.titles.Title(dump.TestID)
	}
	if ok {
		label.WriteString(title)
	} else {
		msg := fmt.Sprintf("unknown test ID %q; check where the dump came from", dump.TestID)
		logger.Warn("%s", msg)
		warnings = append(warnings, msg)
		label.WriteString(domain.UnknownTestIDMark(dump.TestID))
	}

	return label.String(), warnings
}

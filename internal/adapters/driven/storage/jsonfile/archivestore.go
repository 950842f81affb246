// Package jsonfile stores the question archive as JSON files on disk:
// one <part>.json per part in the archive directory plus one consolidated file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/jsonenc"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// Ensure ArchiveStore implements the interface.
var _ driven.ArchiveStore = (*ArchiveStore)(nil)

// ArchiveStore is a directory-of-JSON implementation of driven.ArchiveStore.
type ArchiveStore struct {
	dir    string
	output string
}

// NewArchiveStore creates a store over dir (part files) and output
// (consolidated file). Neither needs to exist yet.
func NewArchiveStore(dir, output string) *ArchiveStore {
	return &ArchiveStore{dir: dir, output: output}
}

// Dir returns the part-file directory.
func (s *ArchiveStore) Dir() string {
	return s.dir
}

// ListBatches reads every *.json file in the archive directory in file-name order.
// The consolidated file is skipped if it lives in the same directory.
func (s *ArchiveStore) ListBatches(ctx context.Context) ([]domain.ArchiveBatch, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("archive directory %s: %w", s.dir, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if s.isOutput(filepath.Join(s.dir, e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	batches := make([]domain.ArchiveBatch, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var b domain.ArchiveBatch
		if err := readJSON(filepath.Join(s.dir, name), &b); err != nil {
			return nil, err
		}
		if b.Part == "" {
			b.Part = strings.TrimSuffix(name, ".json")
		}
		batches = append(batches, b)
	}

	logger.Debug("loaded %d parts from %s", len(batches), s.dir)
	return batches, nil
}

// SaveBatch writes <dir>/<part>.json.
func (s *ArchiveStore) SaveBatch(_ context.Context, batch domain.ArchiveBatch, overwrite bool) (string, error) {
	if err := ValidatePartLabel(batch.Part); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, batch.Part+".json")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s: %w (use overwrite to replace it)", path, domain.ErrAlreadyExists)
		}
	}

	if err := writeJSON(path, batch); err != nil {
		return "", err
	}
	return path, nil
}

// LoadConsolidated reads the consolidated archive.
func (s *ArchiveStore) LoadConsolidated(_ context.Context) ([]domain.ArchiveBatch, error) {
	var batches []domain.ArchiveBatch
	if err := readJSON(s.output, &batches); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return batches, nil
}

// SaveConsolidated writes the consolidated archive.
func (s *ArchiveStore) SaveConsolidated(_ context.Context, batches []domain.ArchiveBatch) (string, error) {
	if batches == nil {
		batches = []domain.ArchiveBatch{}
	}
	if err := writeJSON(s.output, batches); err != nil {
		return "", err
	}
	return s.output, nil
}

func (s *ArchiveStore) isOutput(path string) bool {
	a, errA := filepath.Abs(path)
	b, errB := filepath.Abs(s.output)
	return errA == nil && errB == nil && a == b
}

// ValidatePartLabel rejects labels that cannot be used as a file name.
func ValidatePartLabel(part string) error {
	switch {
	case strings.TrimSpace(part) == "":
		return fmt.Errorf("%w: empty part label", domain.ErrInvalidInput)
	case part == "." || part == "..":
		return fmt.Errorf("%w: part label %q", domain.ErrInvalidInput, part)
	case strings.ContainsAny(part, `/\`) || strings.ContainsRune(part, 0):
		return fmt.Errorf("%w: part label %q contains a path separator", domain.ErrInvalidInput, part)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// writeJSON writes through a temp file and rename so readers never see a
// half-written archive.
func writeJSON(path string, v any) error {
	data, err := jsonenc.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

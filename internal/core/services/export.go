package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService renders the archive through registered exporters.
type ExportService struct {
	archive   driven.ArchiveStore
	exporters map[string]driven.Exporter
}

// NewExportService creates a new export service. Later exporters replace
// earlier ones with the same format name.
func NewExportService(archive driven.ArchiveStore, exporters ...driven.Exporter) *ExportService {
	s := &ExportService{
		archive:   archive,
		exporters: make(map[string]driven.Exporter, len(exporters)),
	}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// Formats lists the registered export formats in name order.
func (s *ExportService) Formats() []string {
	out := make([]string, 0, len(s.exporters))
	for f := range s.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export writes the archive in the named format to w.
func (s *ExportService) Export(ctx context.Context, format string, w io.Writer) error {
	exporter, err := s.exporter(format)
	if err != nil {
		return err
	}
	batches, err := loadCurated(ctx, s.archive)
	if err != nil {
		return err
	}
	logger.Debug("exporting %d questions in %d parts as %s", domain.CountQuestions(batches), len(batches), format)
	return exporter.Export(ctx, w, batches)
}

// ExportFile writes the archive in the named format to path. When path has no
// extension the exporter's conventional one is appended.
func (s *ExportService) ExportFile(ctx context.Context, format, path string) error {
	exporter, err := s.exporter(format)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		path += exporter.Extension()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.Export(ctx, format, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logger.Notice("exported %s to %s", format, path)
	return nil
}

func (s *ExportService) exporter(format string) (driven.Exporter, error) {
	e, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: export format %q (available: %v)", domain.ErrUnsupportedType, format, s.Formats())
	}
	return e, nil
}

// loadCurated prefers the consolidated archive and falls back to the part files.
func loadCurated(ctx context.Context, archive driven.ArchiveStore) ([]domain.ArchiveBatch, error) {
	if archive == nil {
		return nil, domain.ErrNotImplemented
	}
	batches, err := archive.LoadConsolidated(ctx)
	if err == nil {
		return batches, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("loading consolidated archive: %w", err)
	}
	logger.Warn("no deduplicated archive yet; reading raw part files")
	batches, err = archive.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading archive: %w", err)
	}
	return batches, nil
}

package driving

import (
	"context"
	"io"
)

// ExportService renders the curated archive into document formats.
type ExportService interface {
	// Formats lists the registered export formats.
	Formats() []string

	// Export writes the archive in the named format to w.
	// The consolidated archive is used when present, otherwise the part files.
	Export(ctx context.Context, format string, w io.Writer) error

	// ExportFile writes the archive in the named format to path.
	ExportFile(ctx context.Context, format, path string) error
}

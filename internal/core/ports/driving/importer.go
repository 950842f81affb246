package driving

import "context"

// ImportService converts raw dumps into part files in the archive.
type ImportService interface {
	// ImportFile imports one raw JSON dump.
	ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error)

	// ImportFiles imports several dumps in order, stopping at the first error.
	ImportFiles(ctx context.Context, paths []string, opts ImportOptions) ([]ImportResult, error)
}

// ImportOptions controls a single import.
type ImportOptions struct {
	// Part labels a plain question array. Capture dumps derive their own label
	// and ignore this unless it is set explicitly.
	Part string

	// Overwrite replaces an existing part file.
	Overwrite bool

	// AskPart is called for a plain question array when Part is empty.
	// Nil means the import fails instead.
	AskPart func(source string) (string, error)
}

// ImportResult describes an imported dump.
type ImportResult struct {
	// Source is the input path.
	Source string

	// Part is the label the batch was filed under.
	Part string

	// Path is the written part file.
	Path string

	// Questions is the number of records imported.
	Questions int

	// FromCapture is true when the input was a browser-capture dump.
	FromCapture bool

	// Warnings are operator-facing notes (incomplete score, unknown test ID).
	Warnings []string
}

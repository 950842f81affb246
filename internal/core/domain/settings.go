package domain

const unknownDescription = "Unknown"

// ArbiterKind selects how hard merge conflicts are put to the operator.
type ArbiterKind string

// Available arbiters.
const (
	// ArbiterConsole prompts on the terminal line by line.
	ArbiterConsole ArbiterKind = "console"

	// ArbiterTUI shows both records side by side in a full-screen view.
	ArbiterTUI ArbiterKind = "tui"
)

// IsValid returns true if the arbiter kind is recognised.
func (k ArbiterKind) IsValid() bool {
	switch k {
	case ArbiterConsole, ArbiterTUI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ArbiterKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the arbiter.
func (k ArbiterKind) Description() string {
	switch k {
	case ArbiterConsole:
		return "Console (line prompt)"
	case ArbiterTUI:
		return "TUI (side-by-side view)"
	default:
		return unknownDescription
	}
}

// AllArbiterKinds returns all available arbiters.
func AllArbiterKinds() []ArbiterKind {
	return []ArbiterKind{ArbiterConsole, ArbiterTUI}
}

// ArchiveSettings locates the archive on disk.
type ArchiveSettings struct {
	// Dir holds one JSON file per part.
	Dir string

	// Output is the consolidated, deduplicated archive file.
	Output string
}

// ImportSettings controls how raw dumps are imported.
type ImportSettings struct {
	// IDMapPath is the JSON file mapping capture test IDs to part titles.
	IDMapPath string

	// MarkIncomplete prefixes part labels of dumps without a full score.
	MarkIncomplete bool

	// Overwrite allows replacing an existing part file.
	Overwrite bool
}

// DedupeSettings controls the deduplication run.
type DedupeSettings struct {
	// Arbiter selects the conflict resolver.
	Arbiter ArbiterKind

	// Journal enables recording runs and decisions.
	Journal bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Archive ArchiveSettings
	Import  ImportSettings
	Dedupe  DedupeSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Archive: ArchiveSettings{
			Dir:    "./archive/questions",
			Output: "./archive/deduped.json",
		},
		Import: ImportSettings{
			IDMapPath:      "./config-id2title.json",
			MarkIncomplete: true,
			Overwrite:      false,
		},
		Dedupe: DedupeSettings{
			Arbiter: ArbiterConsole,
			Journal: true,
		},
	}
}

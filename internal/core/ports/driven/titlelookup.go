package driven

// TitleLookup maps capture test IDs to human-readable part titles.
// A lookup with no backing data behaves as empty: every ID is unknown.
type TitleLookup interface {
	// Title returns the part title for a test ID.
	Title(testID string) (string, bool)

	// Len returns the number of known IDs.
	Len() int
}

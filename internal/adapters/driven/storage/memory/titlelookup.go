package memory

import "github.com/custodia-labs/quizarc/internal/core/ports/driven"

// Ensure TitleMap implements the interface.
var _ driven.TitleLookup = TitleMap(nil)

// TitleMap is a map-backed driven.TitleLookup. A nil map knows no titles.
type TitleMap map[string]string

// Title returns the part title for a test ID.
func (m TitleMap) Title(testID string) (string, bool) {
	t, ok := m[testID]
	return t, ok
}

// Len returns the number of known IDs.
func (m TitleMap) Len() int {
	return len(m)
}

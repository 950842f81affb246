package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// Ensure TitleFile implements the interface.
var _ driven.TitleLookup = (*TitleFile)(nil)

// TitleFile maps capture test IDs to part titles, read once from a JSON object
// such as {"5f1c...": "第三章 测验"}.
type TitleFile struct {
	path   string
	titles map[string]string
}

// LoadTitleFile reads the ID map at path.
// A missing file yields an empty lookup and a warning, so every ID is unknown.
// A file that exists but is not a JSON object of strings is an error.
func LoadTitleFile(path string) (*TitleFile, error) {
	t := &TitleFile{path: path, titles: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("title map %s not found; capture dumps will be labelled by test ID", path)
			return t, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &t.titles); err != nil {
		return nil, fmt.Errorf("parsing title map %s: %w", path, err)
	}
	if t.titles == nil {
		t.titles = map[string]string{}
	}
	logger.Debug("loaded %d titles from %s", len(t.titles), path)
	return t, nil
}

// Title returns the part title for a test ID.
func (t *TitleFile) Title(testID string) (string, bool) {
	title, ok := t.titles[testID]
	return title, ok
}

// Len returns the number of known IDs.
func (t *TitleFile) Len() int {
	return len(t.titles)
}

// Path returns the file the map was read from.
func (t *TitleFile) Path() string {
	return t.path
}

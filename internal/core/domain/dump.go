package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// CaptureSummary is the score block of a browser-capture dump.
// Fields are pointers because partial summaries occur in the wild.
type CaptureSummary struct {
	MaxScore *float64 `json:"max_score,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	MaxRank  *int     `json:"max_rank,omitempty"`
	Rank     *int     `json:"rank,omitempty"`
}

// IsFullScore reports whether score is present and equals max_score.
// A missing score or max_score counts as not full.
func (s CaptureSummary) IsFullScore() bool {
	if s.Score == nil || s.MaxScore == nil {
		return false
	}
	return *s.Score == *s.MaxScore
}

// CaptureDump is the payload written by the browser capture script for one test result page.
type CaptureDump struct {
	Summary   CaptureSummary   `json:"summary"`
	Validated bool             `json:"validated"`
	TestID    string           `json:"testId"`
	AnswerID  string           `json:"answerId"`
	Content   CaptureContent `json:"content"`
}

// CaptureContent is the question list of a dump. The capture script writes it
// as an object keyed by position ({"0": {...}, "1": {...}}); a plain array is
// accepted too.
type CaptureContent []QuestionRecord

// UnmarshalJSON decodes an array, or an object whose keys are non-negative
// integers, ordered by key.
func (c *CaptureContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []QuestionRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*c = list
		return nil
	}

	var byKey map[string]QuestionRecord
	if err := json.Unmarshal(trimmed, &byKey); err != nil {
		return err
	}
	type entry struct {
		index int
		rec   QuestionRecord
	}
	entries := make([]entry, 0, len(byKey))
	for key, rec := range byKey {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return fmt.Errorf("content key %q is not a question position", key)
		}
		entries = append(entries, entry{i, rec})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].index < entries[b].index })

	list := make([]QuestionRecord, len(entries))
	for i, e := range entries {
		list[i] = e.rec
	}
	*c = list
	return nil
}

// IsCaptureDump reports whether a decoded JSON object looks like a CaptureDump.
func IsCaptureDump(obj map[string]json.RawMessage) bool {
	_, hasSummary := obj["summary"]
	_, hasTestID := obj["testId"]
	return hasSummary && hasTestID
}

// Part label decorations applied to capture dumps.
const (
	// IncompleteScoreMark prefixes part labels of dumps without a full score.
	IncompleteScoreMark = "[未满分]"
)

// UnknownTestIDMark formats the suffix used when a test ID has no known title.
func UnknownTestIDMark(testID string) string {
	return "[ID=" + testID + "]"
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArbiterKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     ArbiterKind
		expected bool
	}{
		{"console is valid", ArbiterConsole, true},
		{"tui is valid", ArbiterTUI, true},
		{"empty string is invalid", ArbiterKind(""), false},
		{"unknown is invalid", ArbiterKind("gui"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}

func TestArbiterKind_Description(t *testing.T) {
	for _, k := range AllArbiterKinds() {
		assert.NotEqual(t, unknownDescription, k.Description())
	}
	assert.Equal(t, unknownDescription, ArbiterKind("gui").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "./archive/questions", s.Archive.Dir)
	assert.Equal(t, "./archive/deduped.json", s.Archive.Output)
	assert.Equal(t, "./config-id2title.json", s.Import.IDMapPath)
	assert.True(t, s.Import.MarkIncomplete)
	assert.False(t, s.Import.Overwrite)
	assert.Equal(t, ArbiterConsole, s.Dedupe.Arbiter)
	assert.True(t, s.Dedupe.Journal)
}

func TestQuestionType(t *testing.T) {
	for _, qt := range AllQuestionTypes() {
		assert.True(t, qt.IsValid())
		assert.NotEqual(t, unknownDescription, qt.Description())
		parsed, ok := ParseQuestionType(qt.String())
		assert.True(t, ok)
		assert.Equal(t, qt, parsed)
	}
	assert.False(t, QuestionTypeUnknown.IsValid())
	assert.Equal(t, "UNKNOWN", QuestionType(9).String())
}

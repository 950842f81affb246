package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Archive]")
	assert.Contains(t, out, "Part files: ./archive/questions")
	assert.Contains(t, out, "Mark incomplete scores: yes")
	assert.Contains(t, out, "Arbiter: Console (line prompt)")
	assert.Contains(t, out, "Run journal: yes")
}

func TestSettingsCmd_Set(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "", "settings", "set", "dedupe.journal", "false")

	require.NoError(t, err)
	assert.Contains(t, out, "dedupe.journal = false")
	assert.Equal(t, false, env.config.GetBool("dedupe.journal"))
}

func TestSettingsCmd_SetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown key", []string{"settings", "set", "nope", "1"}, domain.ErrInvalidInput},
		{"bad arbiter", []string{"settings", "set", "dedupe.arbiter", "gui"}, domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)
			_, err := execute(t, "", tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "archive.dir\n")
	assert.Contains(t, out, "dedupe.arbiter\n")
}

func TestSettingsCmd_Arbiter(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "2\n", "settings", "arbiter")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Console (line prompt)")
	assert.Contains(t, out, "Arbiter set to: TUI (side-by-side view)")
	assert.Equal(t, "tui", env.config.GetString("dedupe.arbiter"))
}

func TestSettingsCmd_ArbiterInvalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "9\n", "settings", "arbiter")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

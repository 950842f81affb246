package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTitleFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config-id2title.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"abc":"第一章 测验","def":"第二章 测验"}`), 0600))

	titles, err := LoadTitleFile(path)

	require.NoError(t, err)
	assert.Equal(t, 2, titles.Len())
	assert.Equal(t, path, titles.Path())
	title, ok := titles.Title("abc")
	assert.True(t, ok)
	assert.Equal(t, "第一章 测验", title)
	_, ok = titles.Title("zzz")
	assert.False(t, ok)
}

func TestLoadTitleFile_MissingIsEmpty(t *testing.T) {
	titles, err := LoadTitleFile(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Equal(t, 0, titles.Len())
	_, ok := titles.Title("abc")
	assert.False(t, ok)
}

func TestLoadTitleFile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"array", `["a"]`},
		{"non-string title", `{"abc": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ids.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			titles, err := LoadTitleFile(path)

			assert.Error(t, err)
			assert.Nil(t, titles)
		})
	}
}

func TestLoadTitleFile_NullIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0600))

	titles, err := LoadTitleFile(path)

	require.NoError(t, err)
	assert.Equal(t, 0, titles.Len())
}

package inbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "dump.json")
	require.NoError(t, os.WriteFile(dump, []byte("[]"), 0o600))
	upper := filepath.Join(dir, "DUMP.JSON")
	require.NoError(t, os.WriteFile(upper, []byte("[]"), 0o600))
	hidden := filepath.Join(dir, ".partial.json")
	require.NoError(t, os.WriteFile(hidden, []byte("[]"), 0o600))
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("x"), 0o600))
	sub := filepath.Join(dir, "folder.json")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected string
	}{
		{"create json", dump, fsnotify.Create, dump},
		{"write json", dump, fsnotify.Write, dump},
		{"write and chmod", dump, fsnotify.Write | fsnotify.Chmod, dump},
		{"upper-case extension", upper, fsnotify.Create, upper},
		{"chmod only", dump, fsnotify.Chmod, ""},
		{"remove", dump, fsnotify.Remove, ""},
		{"rename", dump, fsnotify.Rename, ""},
		{"hidden file", hidden, fsnotify.Create, ""},
		{"other extension", text, fsnotify.Create, ""},
		{"directory", sub, fsnotify.Create, ""},
		{"vanished file", filepath.Join(dir, "gone.json"), fsnotify.Create, ""},
	}

	w := New(dir, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestSettled(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := New("x", time.Second)
	w.now = func() time.Time { return base }

	pending := map[string]time.Time{
		"old.json":   base.Add(-2 * time.Second),
		"fresh.json": base.Add(-100 * time.Millisecond),
	}

	ready := w.settled(pending)

	assert.Equal(t, []string{"old.json"}, ready)
	assert.Contains(t, pending, "fresh.json")
	assert.NotContains(t, pending, "old.json")
}

func TestNew_DefaultSettle(t *testing.T) {
	w := New("inbox", -1)
	assert.Equal(t, DefaultSettle, w.settle)
	assert.Equal(t, "inbox", w.Dir())
}

func TestWatch_ReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	paths, err := New(dir, 50*time.Millisecond).Watch(ctx)
	require.NoError(t, err)

	dump := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(dump, []byte("[]"), 0o600))

	select {
	case got := <-paths:
		assert.Equal(t, dump, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for the new file")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	paths, err := New(t.TempDir(), 0).Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope"), 0).Watch(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		_, err := New(file, 0).Watch(context.Background())
		assert.ErrorContains(t, err, "not a directory")
	})
}

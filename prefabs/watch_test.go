package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	scene := filepath.Join(dir, "scene.yaml")
	for range 3 {
		require.NoError(t, os.WriteFile(scene, []byte("name: x\n"), 0o644))
	}

	c := waitChange(t, w)
	assert.Equal(t, []string{scene}, c.Paths)
	assert.False(t, c.Scripts)
}

func TestWatcherFlagsScripts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	script := filepath.Join(dir, "spawn.tengo")
	require.NoError(t, os.WriteFile(script, []byte("verts = 5\n"), 0o644))

	c := waitChange(t, w)
	assert.Contains(t, c.Paths, script)
	assert.True(t, c.Scripts)
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, open := <-w.Changes
	assert.False(t, open)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

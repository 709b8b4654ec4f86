package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New([]string{".yaml", ".TMX"}, 50*time.Millisecond, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, dir
}

func nextEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name := <-w.Events:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return ""
	}
}

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	w, dir := createTestWatcher(t)
	path := filepath.Join(dir, "level_0.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("id: \"0\"\n"), 0o644))

	assert.Equal(t, path, nextEvent(t, w))
}

func TestWatcher_ExtensionsIgnoreCase(t *testing.T) {
	w, dir := createTestWatcher(t)
	path := filepath.Join(dir, "arena.tmx")

	require.NoError(t, os.WriteFile(path, []byte("<map/>"), 0o644))

	assert.Equal(t, path, nextEvent(t, w))
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	w, dir := createTestWatcher(t)
	path := filepath.Join(dir, "level_1.yaml")

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	assert.Equal(t, path, nextEvent(t, w))
	select {
	case name := <-w.Events:
		t.Fatalf("unexpected second event for %s", name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, _ := createTestWatcher(t)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New([]string{".yaml"}, 0, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, events <-chan FileEvent) FileEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for file event")
		return FileEvent{}
	}
}

func TestWatcherReportsSaves(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	w, err := NewWatcher(fs.Path())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, fs.Save(Document{UserName: "Ada"}))

	ev := waitForEvent(t, w.Events())
	assert.Equal(t, fs.Path(), ev.Path)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	w, err := NewWatcher(fs.Path())
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("noise"), 0644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

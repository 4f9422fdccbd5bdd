package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRepoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "refs", "heads"), 0o755))
	return dir
}

func TestWatcher_SignalsOnGitChange(t *testing.T) {
	dir := newRepoDir(t)

	w, err := New(dir, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a refresh signal")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := newRepoDir(t)

	w, err := New(dir, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, ".git", "refs", "heads", "branch")
		require.NoError(t, os.WriteFile(name, []byte{byte('0' + i)}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a refresh signal")
	}

	// The burst fit inside one debounce window; no second signal follows.
	select {
	case <-w.Events():
		t.Fatal("expected a single coalesced signal")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresLockFiles(t *testing.T) {
	dir := newRepoDir(t)

	w, err := New(dir, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "index.lock"), nil, 0o644))

	select {
	case <-w.Events():
		t.Fatal("lock file churn should not signal")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingRepo(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), time.Millisecond)
	require.Error(t, err)
}

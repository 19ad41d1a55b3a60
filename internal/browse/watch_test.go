package browse

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestWatchPathsWorkingTree(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{
		filepath.Join(".git", "refs", "heads"),
		filepath.Join(".git", "refs", "tags"),
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	paths := watchPaths(root)
	gitDir := filepath.Join(root, ".git")
	for _, want := range []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if !slices.Contains(paths, want) {
			t.Errorf("watchPaths misses %s: %v", want, paths)
		}
	}
	if slices.Contains(paths, filepath.Join(gitDir, "refs", "remotes")) {
		t.Errorf("watchPaths invented a missing directory: %v", paths)
	}
}

func TestWatchPathsBareRepository(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "refs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths := watchPaths(root)
	if !slices.Contains(paths, root) {
		t.Errorf("bare repository root not watched: %v", paths)
	}
	if !slices.Contains(paths, filepath.Join(root, "refs")) {
		t.Errorf("bare refs directory not watched: %v", paths)
	}
}

func TestIgnoreWatchPath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"/repo/.git/index.lock", true},
		{"/repo/.git/something.ipc", true},
		{"/repo/.git/HEAD", false},
		{"/repo/.git/refs/heads/main", false},
		{"/repo/.git/packed-refs", false},
	}
	for _, tt := range tests {
		if got := ignoreWatchPath(tt.name); got != tt.want {
			t.Errorf("ignoreWatchPath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatcherDirtyConsumesFlag(t *testing.T) {
	w := &watcher{}
	if w.Dirty() {
		t.Error("fresh watcher reports dirty")
	}
	w.dirty.Store(true)
	if !w.Dirty() {
		t.Error("dirty flag not reported")
	}
	if w.Dirty() {
		t.Error("dirty flag not consumed")
	}
}

func TestWatcherFlagsRepositoryChange(t *testing.T) {
	root := t.TempDir()
	headsDir := filepath.Join(root, ".git", "refs", "heads")
	if err := os.MkdirAll(headsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := newWatcher(root)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(headsDir, "main"), []byte("0123456789abcdef0123456789abcdef01234567\n"), 0o644); err != nil {
		t.Fatalf("write ref: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if w.Dirty() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never flagged the new ref")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatcherIgnoresLockChurn(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(gitDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := newWatcher(root)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(gitDir, "index.lock"), nil, 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}

	time.Sleep(2 * refreshDelay)
	if w.Dirty() {
		t.Error("lock file churn marked the listing dirty")
	}
}

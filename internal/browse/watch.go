package browse

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/refview-dev/refview/internal/debounce"
)

const refreshDelay = 350 * time.Millisecond

// watcher flags the ref listing as stale when the repository's git
// directory changes, so the next selection round re-lists references
// instead of offering rows that no longer exist.
type watcher struct {
	fs       *fsnotify.Watcher
	debounce *debounce.Debouncer
	dirty    atomic.Bool
	done     chan struct{}
}

func newWatcher(repoPath string) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &watcher{fs: fs, done: make(chan struct{})}
	w.debounce = debounce.New(refreshDelay, func() { w.dirty.Store(true) })
	for _, path := range watchPaths(repoPath) {
		if err := fs.Add(path); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ignoreWatchPath(ev.Name) {
				continue
			}
			slog.Debug("repository changed", slog.String("op", ev.Op.String()), slog.String("path", ev.Name))
			w.debounce.Trigger()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Error("watch error", slog.Any("error", err))
		}
	}
}

// Dirty reports and consumes the pending-refresh flag.
func (w *watcher) Dirty() bool {
	return w.dirty.Swap(false)
}

func (w *watcher) Close() {
	w.debounce.Stop()
	w.fs.Close()
	<-w.done
}

// watchPaths picks the directories whose changes can invalidate a ref
// listing: the git directory itself plus the refs hierarchy, which
// fsnotify will not recurse into on its own.
func watchPaths(root string) []string {
	gitDir := filepath.Join(root, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		// Bare repository: root is the git directory.
		gitDir = root
	}
	paths := []string{gitDir}
	for _, sub := range []string{
		"refs",
		filepath.Join("refs", "heads"),
		filepath.Join("refs", "tags"),
		filepath.Join("refs", "remotes"),
	} {
		dir := filepath.Join(gitDir, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			paths = append(paths, dir)
		}
	}
	return paths
}

// ignoreWatchPath filters the churn git produces while taking locks.
func ignoreWatchPath(name string) bool {
	switch filepath.Ext(name) {
	case ".lock", ".ipc":
		return true
	default:
		return false
	}
}

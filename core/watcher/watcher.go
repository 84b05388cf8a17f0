package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/nic-paul/sqlbind/core/logger"
)

// FileAwaiter waits for the first file with a given extension to be
// created under a root directory. The watch is registered at construction
// time so callers can hold it across the external call that will produce
// the file, then Wait for the result. One-shot: the first match tears the
// watcher down.
type FileAwaiter struct {
	watcher      *fsnotify.Watcher
	rootDir      string
	extension    string
	excludePaths []string
	closeOnce    sync.Once
	closeErr     error
}

// NewFileAwaiter registers recursive watches under rootDir. The returned
// awaiter is already listening when this function returns.
func NewFileAwaiter(rootDir, extension string) (*FileAwaiter, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fa := &FileAwaiter{
		watcher:      w,
		rootDir:      rootDir,
		extension:    extension,
		excludePaths: []string{".git", "bin", "obj"},
	}

	if err := fa.addWatchersRecursively(rootDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to add watchers: %w", err)
	}

	return fa, nil
}

// Wait blocks until a matching file is created, the watcher fails, or the
// caller's context is done. The awaiter imposes no timeout of its own;
// bound the wait through ctx if one is needed. The watcher is torn down
// exactly once, on first match or error.
func (fa *FileAwaiter) Wait(ctx context.Context) (string, error) {
	defer fa.Close()

	for {
		select {
		case event, ok := <-fa.watcher.Events:
			if !ok {
				return "", fmt.Errorf("watcher events channel closed")
			}

			if fa.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if !event.Has(fsnotify.Create) {
				continue
			}

			if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
				logger.Debug("Adding watcher for new directory: %s", event.Name)
				fa.watcher.Add(event.Name)
				continue
			}

			if strings.HasSuffix(event.Name, fa.extension) {
				logger.Debug("Matched created file: %s", event.Name)
				return event.Name, nil
			}

		case err, ok := <-fa.watcher.Errors:
			if !ok {
				return "", fmt.Errorf("watcher errors channel closed")
			}
			return "", fmt.Errorf("watcher error: %w", err)

		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Close releases the underlying watcher. Safe to call more than once.
func (fa *FileAwaiter) Close() error {
	fa.closeOnce.Do(func() {
		fa.closeErr = fa.watcher.Close()
	})
	return fa.closeErr
}

func (fa *FileAwaiter) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fa.rootDir, path)
	if err != nil {
		return false
	}

	relPath = filepath.Clean(relPath)

	for _, excludePath := range fa.excludePaths {
		excludePath = filepath.Clean(excludePath)

		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (fa *FileAwaiter) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if fa.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fa.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}

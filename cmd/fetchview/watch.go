package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 500 * time.Millisecond

// isSourceFile reports whether a change to name requires a rebuild.
func isSourceFile(name string) bool {
	switch filepath.Ext(name) {
	case ".go", ".mod", ".sum":
		return true
	}
	return false
}

// addTree watches root and every directory below it, skipping hidden
// directories and the module cache.
func addTree(watcher *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn("error watching directory", "path", path, "error", err)
		}
		return nil
	})
}

// watchFiles watches the source trees under roots and calls onRebuild once
// changes have settled for debounceDelay. It returns when ctx is done.
func watchFiles(ctx context.Context, roots []string, logger *slog.Logger, onRebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error setting up file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addTree(watcher, root, logger); err != nil {
			logger.Warn("error walking directory for file watching", "root", root, "error", err)
		}
	}

	rebuildTimer := time.NewTimer(0)
	if !rebuildTimer.Stop() {
		<-rebuildTimer.C
	}
	defer rebuildTimer.Stop()
	rebuildPending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addTree(watcher, event.Name, logger)
					continue
				}
			}
			if !isSourceFile(event.Name) {
				continue
			}
			logger.Debug("file changed, scheduling rebuild", "file", event.Name)
			if !rebuildTimer.Stop() && rebuildPending {
				select {
				case <-rebuildTimer.C:
				default:
				}
			}
			rebuildTimer.Reset(debounceDelay)
			rebuildPending = true
		case <-rebuildTimer.C:
			if rebuildPending {
				rebuildPending = false
				if err := onRebuild(); err != nil {
					logger.Error("error during rebuild", "error", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

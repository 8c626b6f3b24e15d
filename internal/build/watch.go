package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch builds once and then rebuilds whenever a rule file under the source
// dir changes, calling onBuild after every build. It blocks until ctx is
// cancelled.
func Watch(ctx context.Context, cfg Config, onBuild func(*Result, error)) error {
	cfg = cfg.withDefaults()
	log := cfg.Logger
	if err := cfg.validate(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	s := newScanner(cfg)
	if err := s.addDirs(watcher, cfg.SourceDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.SourceDir, err)
	}
	log.Info("Watching for changes",
		zap.String("source", cfg.SourceDir),
		zap.Duration("debounce", cfg.Debounce))

	onBuild(Build(cfg))

	// Nil until an event arms the debounce timer
	var fire <-chan time.Time
	timer := time.NewTimer(cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !s.shouldProcessEvent(cfg, watcher, event) {
				continue
			}
			log.Debug("File event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(cfg.Debounce)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("Watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			onBuild(Build(cfg))
		}
	}
}

// addDirs watches root and every directory below it, except hidden
// directories and the output dir.
func (s *scanner) addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if s.outputDir != "" {
			if abs, err := filepath.Abs(path); err == nil && isWithin(abs, s.outputDir) {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}

// shouldProcessEvent filters events down to changes of included rule files.
// New directories are added to the watcher and trigger a build, since files
// may land in them before the watch is in place.
func (s *scanner) shouldProcessEvent(cfg Config, watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || s.shouldSkipFile(event.Name) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addDirs(watcher, event.Name); err != nil {
				cfg.Logger.Warn("Cannot watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return true
		}
	}

	return matchesIncludes(cfg, event.Name)
}

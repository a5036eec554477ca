package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watch converts all matched inputs once, then keeps running and
// reconverts an input whenever it changes. It returns when the process
// receives SIGINT or SIGTERM.
func (a *App) Watch(patterns []string, output string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initial pass; per-file failures are logged and retried on change
	if err := a.Run(patterns, output); err != nil {
		a.logger.Warn("Initial conversion incomplete", "error", err.Error())
	}

	w, err := newInputWatcher(patterns, a.cfg.Watch.DebounceDelay, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.Info("Watching for changes", "debounce", a.cfg.Watch.DebounceDelay)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped")
			return nil

		case input, ok := <-w.Changed():
			if !ok {
				return nil
			}
			outPath := stepName(input)
			if output != "" {
				if info, err := os.Stat(output); err == nil && info.IsDir() {
					outPath = filepath.Join(output, filepath.Base(outPath))
				} else {
					outPath = output
				}
			}
			if err := a.ConvertFile(ctx, input, outPath); err != nil {
				a.logger.Error("Reconversion failed", "input", input, "error", err.Error())
			}
		}
	}
}

// inputWatcher watches the directories under the input patterns and
// reports matching files after a debounce window, collapsing bursts of
// write events into one change per file.
type inputWatcher struct {
	patterns []string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	pendingMu sync.Mutex
	pending   map[string]bool

	changed chan string
	done    chan struct{}
}

func newInputWatcher(patterns []string, debounce time.Duration, logger *slog.Logger) (*inputWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &inputWatcher{
		patterns: patterns,
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[string]bool),
		changed:  make(chan string, 16),
		done:     make(chan struct{}),
	}

	for _, dir := range watchRoots(patterns) {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Failed to watch directory", "path", dir, "error", err.Error())
		} else {
			logger.Debug("Watching directory", "path", dir)
		}
	}

	go w.processEvents()
	return w, nil
}

// Changed returns the channel of debounced, pattern-matching file paths.
func (w *inputWatcher) Changed() <-chan string {
	return w.changed
}

func (w *inputWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *inputWatcher) processEvents() {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	defer close(w.changed)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err.Error())

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *inputWatcher) handleFSEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.matches(event.Name) {
		// Watch newly created subdirectories of a ** pattern
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watcher.Add(event.Name); err == nil {
					w.logger.Debug("Added watch for new directory", "path", event.Name)
				}
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = true
	w.pendingMu.Unlock()

	w.logger.Debug("Input change detected", "path", event.Name, "op", event.Op.String())
}

func (w *inputWatcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := make([]string, 0, len(w.pending))
	for path := range w.pending {
		toProcess = append(toProcess, path)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	for _, path := range toProcess {
		// Skip files deleted during the debounce window
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		select {
		case w.changed <- path:
		default:
			w.logger.Warn("Change channel full, dropping event", "path", path)
		}
	}
}

func (w *inputWatcher) matches(path string) bool {
	for _, pattern := range w.patterns {
		if ok, err := doublestar.PathMatch(filepath.ToSlash(pattern), filepath.ToSlash(path)); err == nil && ok {
			return true
		}
		if pattern == path {
			return true
		}
	}
	return false
}

// watchRoots returns the directories to watch for a set of patterns: the
// fixed prefix of each glob, or the containing directory of a literal
// path, deduplicated.
func watchRoots(patterns []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		dir := filepath.FromSlash(base)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

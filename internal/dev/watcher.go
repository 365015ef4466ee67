package dev

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Root is the pages directory to watch recursively.
	Root string

	// Extension limits file events to page files (default: ".vue").
	// Removals and renames always count since they may hit a directory.
	Extension string

	// Ignore lists base-name globs to skip.
	Ignore []string

	// Debounce is the quiet period before OnChange fires.
	// Default: 200ms.
	Debounce time.Duration

	// Logger is the structured logger (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".*",
	"_*",
	"node_modules",
	"dist",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher reports changes below a directory tree.
type Watcher struct {
	config   WatcherConfig
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	onChange func(paths []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	closed  bool
}

// NewWatcher creates a watcher and registers every directory under Root.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 200 * time.Millisecond
	}
	if config.Extension == "" {
		config.Extension = ".vue"
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		config:  config,
		fsw:     fsw,
		logger:  config.Logger.With("component", "watcher"),
		pending: make(map[string]struct{}),
	}
	if err := w.addRecursive(config.Root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// OnChange sets the callback for debounced changes. It receives the changed
// paths in sorted order.
func (w *Watcher) OnChange(fn func(paths []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start processes file events until ctx is canceled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.shouldIgnore(ev.Name) || ev.Op == fsnotify.Chmod {
		return
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(ev.Name); err != nil {
				w.logger.Warn("watching new directory failed", "path", ev.Name, "error", err)
			}
			// Files created together with the directory produce no events of
			// their own.
			w.schedule(ev.Name)
			return
		}
	}

	removed := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
	if !removed && !strings.HasSuffix(ev.Name, w.config.Extension) {
		return
	}
	w.schedule(ev.Name)
}

// schedule records a changed path and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	fn := w.onChange
	w.mu.Unlock()

	sort.Strings(paths)
	w.logger.Debug("pages changed", "count", len(paths))
	if fn != nil {
		fn(paths)
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// shouldIgnore matches the base name against the ignore globs.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

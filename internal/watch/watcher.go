package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Op is the kind of change observed for a path.
type Op int

const (
	Created Op = iota
	Modified
	Removed
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Change is a detected file change.
type Change struct {
	Path string
	Op   Op
}

// Config configures a Watcher.
type Config struct {
	// Dirs are the directories to watch, recursively.
	Dirs []string

	// Ignore holds base-name globs ("*_test.go") and plain directory
	// names (".git") to skip.
	Ignore []string

	// Interval between polls. Default: 250ms.
	Interval time.Duration

	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{".git", "*.tmp", "*.swp", "*~", ".*.tmp-*"}

// Watcher detects changes by comparing modification times between polls.
type Watcher struct {
	config Config
	logger *slog.Logger

	mu     sync.Mutex
	seen   map[string]time.Time
	primed bool
}

// New creates a watcher. The first Poll records the current state and
// reports nothing.
func New(config Config) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 250 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		config: config,
		logger: logger.With("component", "watch"),
		seen:   make(map[string]time.Time),
	}
}

// Poll scans the directories once and returns the changes since the
// previous poll, sorted by path.
func (w *Watcher) Poll() []Change {
	current := make(map[string]time.Time)
	for _, dir := range w.config.Dirs {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.ignored(p) {
				if d.IsDir() && p != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			current[p] = info.ModTime()
			return nil
		})
		if err != nil {
			w.logger.Debug("walk failed", "dir", dir, "error", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	prev, primed := w.seen, w.primed
	w.seen, w.primed = current, true
	if !primed {
		return nil
	}

	var changes []Change
	for p, mod := range current {
		old, ok := prev[p]
		switch {
		case !ok:
			changes = append(changes, Change{Path: p, Op: Created})
		case mod.After(old):
			changes = append(changes, Change{Path: p, Op: Modified})
		}
	}
	for p := range prev {
		if _, ok := current[p]; !ok {
			changes = append(changes, Change{Path: p, Op: Removed})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

// Run polls until ctx is done, calling fn with each non-empty batch.
func (w *Watcher) Run(ctx context.Context, fn func([]Change)) error {
	w.Poll()
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if changes := w.Poll(); len(changes) > 0 {
				fn(changes)
			}
		}
	}
}

func (w *Watcher) ignored(p string) bool {
	name := filepath.Base(p)
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

// Exists reports whether dir is an existing directory.
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

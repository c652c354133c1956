// Package watcher provides debounced file system watching over a registry
// directory, for validate --watch.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roster-dev/roster/internal/logger"
	"github.com/roster-dev/roster/internal/registry"
)

// Watcher monitors a registry directory for changes to the manifest and
// entity sources, coalescing bursts of events into single change signals.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher options.
type Config struct {
	Dir      string
	Debounce time.Duration
}

// DefaultDebounce coalesces editor save bursts without making re-validation
// feel sluggish.
const DefaultDebounce = 500 * time.Millisecond

// New creates a watcher for the given registry directory.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.Dir,
		debounce:  cfg.Debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start adds watches for the registry directory, the entity directories, and
// each skill directory, then begins the event loop. The returned channel
// receives one signal per settled burst of changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	for _, sub := range []string{registry.SkillsDir, registry.AgentsDir, registry.CommandsDir} {
		path := filepath.Join(w.dir, sub)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}
	w.addSkillDirs()

	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// addSkillDirs watches each existing skill directory. fsnotify is not
// recursive, so new skill directories are picked up from create events in
// the loop.
func (w *Watcher) addSkillDirs() {
	skillsRoot := filepath.Join(w.dir, registry.SkillsDir)
	entries, err := os.ReadDir(skillsRoot)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.fsWatcher.Add(filepath.Join(skillsRoot, entry.Name())); err != nil {
			logger.Debugw("skipping skill dir watch", "dir", entry.Name(), "error", err)
		}
	}
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Newly created directories under skills/ get their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsWatcher.Add(event.Name)
				}
			}

			if !isRelevant(event) {
				continue
			}
			logger.Debugw("registry change", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-timerC(timer):
			if pending {
				// Non-blocking send; a signal already queued covers this burst.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Debugw("watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isRelevant reports whether an event concerns a file the validator reads.
func isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".md", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Package watch notifies the UI when the repository changes behind its
// back: commits from another terminal, fetches, or rebases finishing.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/stax/internal/log"
)

// Watcher observes a repository's .git directory and emits a debounced
// refresh signal when its state changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan struct{}
	debounce time.Duration
	done     chan struct{}
}

// New creates a Watcher over the repository at repoDir. The debounce
// window coalesces bursts of events (a rebase touches many refs) into
// one refresh signal.
func New(repoDir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	gitDir := filepath.Join(repoDir, ".git")
	if err := fsw.Add(gitDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", gitDir, err)
	}
	// refs/heads may not exist yet in a fresh repository.
	headsDir := filepath.Join(gitDir, "refs", "heads")
	if _, statErr := os.Stat(headsDir); statErr == nil {
		if err := fsw.Add(headsDir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", headsDir, err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		events:   make(chan struct{}, 1),
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events returns the refresh signal channel. Signals are coalesced; a
// slow consumer sees at most one pending signal.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			log.Debug(log.CatVCS, "Repository change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatVCS, "Watcher error", err)
		}
	}
}

// relevant filters out noise: lock files churn on every git command,
// including the read-only ones we run ourselves.
func relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if filepath.Ext(name) == ".lock" {
		return false
	}
	return true
}

// Package watch detects out-of-band writes to the data directory, made by
// another process sharing the database, and forwards them to the
// coordinator as store-change notifications.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/quillworks-labs/quill-cli/internal/logger"
)

// Notifier receives store-change notifications. The coordinator implements
// it; the watcher never feeds anything else.
type Notifier interface {
	NotifyStoreChanged(projectID string)
}

// Watcher watches the database file for writes by other processes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	notify    Notifier
	base      string
	projectID string

	closeOnce sync.Once
}

// New starts watching the directory containing dbPath. Events for the
// database file and its WAL sidecars are forwarded as notifications for
// projectID; everything else in the directory is ignored.
func New(dbPath, projectID string, notify Notifier) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching data directory: %w", err)
	}

	w := &Watcher{
		watcher:   fsw,
		notify:    notify,
		base:      filepath.Base(dbPath),
		projectID: projectID,
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// The WAL and shared-memory sidecars count as database writes too.
	name := filepath.Base(event.Name)
	if !strings.HasPrefix(name, w.base) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	logger.Debug("watch: database changed on disk (%s)", event.Op)
	w.notify.NotifyStoreChanged(w.projectID)
}

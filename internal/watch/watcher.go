// Package watch triggers index reloads when the source document changes
// on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v2/log"
)

// debounce is how long a burst of writes must settle before onChange
// fires. Editors commonly emit several events per save.
const debounce = 500 * time.Millisecond

// Watcher observes one file and invokes onChange after changes settle.
// The parent directory is watched rather than the file itself, because
// editors save via temp-file renames that replace the inode.
type Watcher struct {
	path     string
	onChange func()

	fw      *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	stop    sync.Once
	started bool
}

// New prepares a watcher for path. Nothing runs until Start.
func New(path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create file watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		onChange: onChange,
		fw:       fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers the watch and launches the event loop. The loop ends
// on Stop or when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	w.started = true
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the watch. It is safe to call
// repeatedly and before Start.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		close(w.stopCh)
		if w.started {
			<-w.doneCh
		}
		_ = w.fw.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Errorf("watch %s: %v", w.path, err)

		case <-fire:
			timer = nil
			fire = nil
			w.onChange()
		}
	}
}

package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a store's rule table when its backing file changes.
// Change events are debounced so editors that write in several steps
// trigger a single reload.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the store's backing file.
func NewWatcher(store *Store) (*Watcher, error) {
	if store.path == "" {
		return nil, fmt.Errorf("watch: store has no backing file")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory rather than the file: editors often replace the
	// file via rename, which drops a watch placed on the file itself.
	if err := fsw.Add(filepath.Dir(store.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", store.path, err)
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Run blocks, reloading the store on file changes until the context is
// cancelled. Reload failures are reported to stderr and the previous table
// stays active.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	target, err := filepath.Abs(w.store.path)
	if err != nil {
		return fmt.Errorf("resolve rule path: %w", err)
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.store.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: rule reload failed, keeping previous table: %v\n", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: rule watcher: %v\n", err)
		}
	}
}

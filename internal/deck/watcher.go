package deck

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the corpus from a decks file whenever it changes on
// disk, so the serving process picks up externally refreshed data
// without a restart.
type Watcher struct {
	path     string
	corpus   *Corpus
	onReload func(loaded, skipped int)
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the given decks file. onReload is
// called after each successful reload and may be nil.
func NewWatcher(path string, corpus *Corpus, onReload func(loaded, skipped int)) *Watcher {
	return &Watcher{
		path:     path,
		corpus:   corpus,
		onReload: onReload,
		stopChan: make(chan struct{}),
	}
}

// Start blocks, reloading the corpus on each write to the decks file,
// until the context is cancelled or Stop is called. Writers commonly
// replace the file with a rename, which drops the watch, so the path
// is re-added after such events.
func (w *Watcher) Start(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	// Coalesce bursts of events into one reload.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				// Re-establish the watch on the replacement file; it
				// may not exist yet, the next tick retries via reload.
				_ = watcher.Add(w.path)
			}
			pending = time.After(250 * time.Millisecond)
		case err := <-watcher.Errors:
			log.Printf("Decks file watcher error: %v", err)
		case <-pending:
			pending = nil
			w.reload()
			_ = watcher.Add(w.path)
		}
	}
}

// Stop terminates a running watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

func (w *Watcher) reload() {
	decks, err := LoadFile(w.path)
	if err != nil {
		log.Printf("Reload of %s failed: %v", w.path, err)
		return
	}
	loaded, skipped := w.corpus.Replace(decks)
	log.Printf("Reloaded %s: %d decks loaded, %d skipped", w.path, loaded, skipped)
	if w.onReload != nil {
		w.onReload(loaded, skipped)
	}
}

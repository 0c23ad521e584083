package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// pollInterval is used when fsnotify is unavailable.
const pollInterval = time.Second

// Change reports a reload triggered by an on-disk modification.
// Err is set when the new content could not be loaded; the previous state
// is kept in that case.
type Change struct {
	Err error
}

// Watch follows the library file and reloads it whenever its content
// changes. Writes made by Save are not reported. The channel is closed when
// ctx is cancelled. Memory libraries return a channel that only closes.
func (l *Library) Watch(ctx context.Context, debounce time.Duration) <-chan Change {
	ch := make(chan Change, 1)
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if l.path == "" {
		go func() {
			defer close(ch)
			<-ctx.Done()
		}()
		return ch
	}

	// The watcher is registered before returning so no write made after
	// Watch is missed.
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		// Editors replace files by rename, so watch the directory.
		if addErr := watcher.Add(filepath.Dir(l.path)); addErr != nil {
			watcher.Close()
			watcher = nil
		}
	}

	go func() {
		defer close(ch)

		if watcher == nil {
			l.watchPolling(ctx, ch)
			return
		}
		defer watcher.Close()

		l.watchEvents(ctx, ch, watcher, debounce)
	}()

	return ch
}

func (l *Library) watchEvents(ctx context.Context, ch chan<- Change, watcher *fsnotify.Watcher, debounce time.Duration) {
	baseName := filepath.Base(l.path)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			l.reloadIfChanged(ctx, ch)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (l *Library) watchPolling(ctx context.Context, ch chan<- Change) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.reloadIfChanged(ctx, ch)
		}
	}
}

func (l *Library) reloadIfChanged(ctx context.Context, ch chan<- Change) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		// Mid-rename; the next event will catch up.
		return
	}

	l.mu.RLock()
	same := bytes.Equal(data, l.raw)
	l.mu.RUnlock()
	if same {
		return
	}

	change := Change{Err: l.Reload()}
	select {
	case ch <- change:
	case <-ctx.Done():
	}
}

package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/mgpai22/subsearch/internal/subtitle"
)

// time a file must stay quiet before it is handed to the handler
const DefaultSettle = 500 * time.Millisecond

// called once per settled subtitle file
type Handler func(ctx context.Context, path string)

type Watcher struct {
	dir     string
	handler Handler
	logger  *logging.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
}

// New watches dir (not recursively) for new or rewritten .srt/.vtt files.
func New(
	dir string,
	handler Handler,
	log *logging.Logger,
	settle time.Duration,
) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}

	return &Watcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: fw,
		settle:  settle,
		timers:  make(map[string]*time.Timer),
		ready:   make(chan string),
	}, nil
}

// Start blocks until ctx is cancelled or the underlying watcher fails.
// Handler calls happen on this goroutine, one at a time.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Infow("Watching for subtitle files", "dir", w.dir)
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infow("Watcher stopped")
			return ctx.Err()

		case path := <-w.ready:
			w.handler(ctx, path)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !subtitle.IsSubtitleFile(event.Name) {
				w.logger.Debugw("Ignoring non-subtitle file", "file", event.Name)
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warnw("Watcher error", "error", err)
		}
	}
}

// Stop closes the file watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// restarts the settle timer so bursts of writes produce one handler call
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}

	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

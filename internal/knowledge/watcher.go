package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a Store whenever its knowledge file changes on disk.
// The parent directory is watched so editors that replace the file by
// rename are still picked up.
type Watcher struct {
	store    *Store
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	reloaded chan struct{}
}

// NewWatcher creates a watcher for path. debounce <= 0 uses DefaultDebounce.
func NewWatcher(store *Store, path string, debounce time.Duration, logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		store:    store,
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger.With().Str("component", "knowledge_watcher").Logger(),
		reloaded: make(chan struct{}, 1),
	}
}

// Reloaded receives a value after every reload attempt
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Run blocks until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info().Str("path", w.path).Msg("watching knowledge file")

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")

		case <-timerCh:
			timerCh = nil
			if _, err := w.store.Reload(ctx); err == nil {
				w.logger.Info().Str("path", w.path).Msg("knowledge file reloaded")
			}
			select {
			case w.reloaded <- struct{}{}:
			default:
			}
		}
	}
}

package adapters

import (
	"context"
	"os"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"factory-checker/internal/ports"
)

const defaultWatchDebounce = 500 * time.Millisecond

// FileWatchAdapter reruns a callback after watched files settle.
type FileWatchAdapter struct {
	Debounce time.Duration
}

func NewFileWatchAdapter(debounce time.Duration) FileWatchAdapter {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return FileWatchAdapter{Debounce: debounce}
}

func (a FileWatchAdapter) Watch(ctx context.Context, paths []string, onChange func(ctx context.Context) error) error {
	logger := log.Ctx(ctx)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	watched := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping missing watch path")
			continue
		}
		if err := watcher.Add(path); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to watch " + path).
				WithCause(err)
		}
		watched++
	}
	if watched == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no files to watch")
	}

	debounce := a.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(debounce)
			}
			// Editors that save by rename drop the watch.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				_ = watcher.Add(event.Name)
				timer.Reset(debounce)
			}
		case <-timer.C:
			logger.Debug().Msg("watched files changed")
			if err := onChange(ctx); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

var _ ports.WatchPort = FileWatchAdapter{}

package app

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

var errWatchPathsChanged = errors.New("watched paths changed")

// Watch processes the review queue once and again whenever the config,
// snapshot or lookup files change. A failing cycle is logged and the next
// change retried. A reload that changes the lookup files restarts the watch
// on the new set, and one that changes the api url reopens the backend. It returns when ctx is cancelled.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	if s.Watcher == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no file watcher configured")
	}
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return err
	}
	req.Mode = mode
	cfg, err := s.loadConfig(ctx, req.CheckerOptions)
	if err != nil {
		return err
	}
	backend, err := s.openBackend(req.CheckerOptions, cfg)
	if err != nil {
		return err
	}
	if _, err := s.review(ctx, req.ReviewRequest, cfg, backend); err != nil {
		return err
	}

	paths := watchPaths(req, cfg.LookupFiles)
	endpoint := cfg.APIURL
	for {
		log.Ctx(ctx).Info().Strs("paths", paths).Msg("watching for changes")
		err := s.Watcher.Watch(ctx, paths, func(ctx context.Context) error {
			logger := log.Ctx(ctx)
			backend.Invalidate()
			cfg, err := s.loadConfig(ctx, req.CheckerOptions)
			if err != nil {
				logger.Error().Err(err).Msg("config reload failed")
				return nil
			}
			if cfg.APIURL != endpoint {
				reopened, err := s.openBackend(req.CheckerOptions, cfg)
				if err != nil {
					logger.Error().Err(err).Str("endpoint", cfg.APIURL).Msg("backend reopen failed")
					return nil
				}
				logger.Info().Str("endpoint", cfg.APIURL).Msg("review endpoint changed")
				backend = reopened
				endpoint = cfg.APIURL
			}
			if _, err := s.review(ctx, req.ReviewRequest, cfg, backend); err != nil {
				logger.Error().Err(err).Msg("review cycle failed")
			}
			if next := watchPaths(req, cfg.LookupFiles); !slices.Equal(next, paths) {
				paths = next
				return errWatchPathsChanged
			}
			return nil
		})
		if !errors.Is(err, errWatchPathsChanged) {
			return err
		}
	}
}

func watchPaths(req WatchRequest, lookupFiles map[string]string) []string {
	var paths []string
	seen := map[string]struct{}{}
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	add(req.ConfigPath)
	add(req.SnapshotPath)
	for _, path := range slices.Sorted(maps.Values(lookupFiles)) {
		add(path)
	}
	for _, path := range req.ExtraPaths {
		add(path)
	}
	return paths
}

package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"factory-checker/internal/adapters"
	"factory-checker/internal/core"
	"factory-checker/internal/types"
)

// loadConfig reads the config file, applies command line overrides and
// returns the normalized, validated result.
func (s Service) loadConfig(ctx context.Context, opts CheckerOptions) (types.CheckerConfig, error) {
	cfg, err := s.ConfigLoader.LoadConfig(strings.TrimSpace(opts.ConfigPath))
	if err != nil {
		return types.CheckerConfig{}, err
	}
	if apiURL := strings.TrimSpace(opts.APIURL); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if len(opts.UpstreamProjects) > 0 {
		cfg.UpstreamProjects = append([]string(nil), opts.UpstreamProjects...)
	}
	if opts.HistoryLimit != 0 {
		cfg.HistoryLimit = opts.HistoryLimit
	}
	validator := core.NewConfigValidator()
	cfg = validator.Normalize(cfg)
	if err := validator.Validate(ctx, cfg); err != nil {
		return types.CheckerConfig{}, err
	}
	return cfg, nil
}

func (s Service) openBackend(opts CheckerOptions, cfg types.CheckerConfig) (Backend, error) {
	snapshotPath := strings.TrimSpace(opts.SnapshotPath)
	if snapshotPath == "" {
		return Backend{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build service snapshot is required")
	}
	open := s.OpenBackend
	if open == nil {
		open = OpenSnapshotBackend
	}
	return open(snapshotPath, cfg.APIURL)
}

// newResolver wires a resolver for one run. Lookup files are reread every
// time so edits are picked up between watch cycles.
func newResolver(cfg types.CheckerConfig, backend Backend) (core.SubmissionResolver, error) {
	lookup := adapters.NewLookupTableAdapter(cfg.Overrides, cfg.LookupFiles)
	return core.NewSubmissionResolver(cfg, backend.BuildService, lookup)
}

package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"factory-checker/internal/types"
)

type ConfigValidator struct{}

func NewConfigValidator() ConfigValidator {
	return ConfigValidator{}
}

// Normalize fills unset fields with the built-in defaults.
func (v ConfigValidator) Normalize(cfg types.CheckerConfig) types.CheckerConfig {
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = types.DefaultAPIURL
	}
	var projects []string
	for _, project := range cfg.UpstreamProjects {
		if trimmed := strings.TrimSpace(project); trimmed != "" {
			projects = append(projects, trimmed)
		}
	}
	if len(projects) == 0 {
		projects = append(projects, types.DefaultUpstreamProjects...)
	}
	cfg.UpstreamProjects = projects
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = types.DefaultHistoryLimit
	}
	if strings.TrimSpace(cfg.StagingPrefix) == "" {
		cfg.StagingPrefix = types.DefaultStagingPrefix
	}
	if strings.TrimSpace(cfg.RepoCheckerUser) == "" {
		cfg.RepoCheckerUser = types.DefaultRepoCheckerUser
	}
	if strings.TrimSpace(cfg.RequestPrefix) == "" {
		cfg.RequestPrefix = types.DefaultRequestPrefix
	}
	return cfg
}

// Validate rejects configurations the resolver cannot run with. It expects
// a normalized config.
func (v ConfigValidator) Validate(ctx context.Context, cfg types.CheckerConfig) error {
	assert.NotEmpty(ctx, cfg.APIURL, "api_url must be set")
	assert.NotEmpty(ctx, cfg.RequestPrefix, "request_prefix must be set")
	if len(cfg.UpstreamProjects) == 0 {
		return configurationError("upstream_projects must not be empty")
	}
	if cfg.HistoryLimit < 0 {
		return configurationError("history_limit must not be negative")
	}
	seen := map[string]struct{}{}
	for i, mapping := range cfg.NamespaceMap {
		if strings.TrimSpace(mapping.Prefix) == "" {
			return configurationError(fmt.Sprintf("namespace_map[%d] missing prefix", i))
		}
		if strings.TrimSpace(mapping.Endpoint) == "" {
			return configurationError(fmt.Sprintf("namespace_map[%d] missing endpoint", i))
		}
		if _, ok := seen[mapping.Prefix]; ok {
			return configurationError(fmt.Sprintf("namespace_map prefix %s declared twice", mapping.Prefix))
		}
		seen[mapping.Prefix] = struct{}{}
	}
	for project, table := range cfg.Overrides {
		for pkg, upstream := range table {
			if strings.TrimSpace(upstream) == "" {
				return configurationError(fmt.Sprintf("override for %s in %s has no upstream project", pkg, project))
			}
		}
	}
	for project, path := range cfg.LookupFiles {
		if strings.TrimSpace(path) == "" {
			return configurationError(fmt.Sprintf("lookup file for %s is empty", project))
		}
	}
	log.Ctx(ctx).Debug().Strs("projects", cfg.UpstreamProjects).Msg("checker config validated")
	return nil
}

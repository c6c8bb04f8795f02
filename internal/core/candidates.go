package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"factory-checker/internal/ports"
)

// UpstreamCandidateResolver lists the projects a package is expected to
// come from, in the order they should be tried.
type UpstreamCandidateResolver struct {
	Defaults []string
	Lookup   ports.UpstreamLookupPort
}

func NewUpstreamCandidateResolver(defaults []string, lookup ports.UpstreamLookupPort) UpstreamCandidateResolver {
	return UpstreamCandidateResolver{
		Defaults: append([]string(nil), defaults...),
		Lookup:   lookup,
	}
}

// CandidatesFor consults the override table once per default project and
// falls back to the defaults when no override applies.
func (r UpstreamCandidateResolver) CandidatesFor(ctx context.Context, pkg string) []string {
	var projects []string
	if r.Lookup != nil {
		for _, project := range r.Defaults {
			upstream, ok := r.Lookup.Lookup(ctx, project, pkg)
			if !ok || strings.TrimSpace(upstream) == "" {
				continue
			}
			projects = append(projects, upstream)
		}
	}
	if len(projects) == 0 {
		return append([]string(nil), r.Defaults...)
	}
	log.Ctx(ctx).Debug().Str("package", pkg).Strs("projects", projects).Msg("upstream overrides applied")
	return projects
}

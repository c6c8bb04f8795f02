package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"factory-checker/internal/adapters"
	"factory-checker/internal/core"
	"factory-checker/internal/types"
)

// Candidates shows where a package is expected to come from and how each
// candidate project is reached. It needs no snapshot.
func (s Service) Candidates(ctx context.Context, req CandidatesRequest) (CandidatesResult, error) {
	pkg := strings.TrimSpace(req.Package)
	if pkg == "" {
		return CandidatesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	cfg, err := s.loadConfig(ctx, req.CheckerOptions)
	if err != nil {
		return CandidatesResult{}, err
	}
	lookup := adapters.NewLookupTableAdapter(cfg.Overrides, cfg.LookupFiles)
	projects := core.NewUpstreamCandidateResolver(cfg.UpstreamProjects, lookup).CandidatesFor(ctx, pkg)
	router := core.NewNamespaceRouter(cfg.APIURL, cfg.RequestPrefix, cfg.NamespaceMap)
	routes := make([]types.Route, 0, len(projects))
	for _, project := range projects {
		routes = append(routes, router.Route(project))
	}
	return CandidatesResult{Package: pkg, Routes: routes}, nil
}

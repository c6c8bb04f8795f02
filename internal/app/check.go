package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Check decides a single submission outside of any review queue.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	src := req.Source
	tgt := req.Target
	if strings.TrimSpace(src.Project) == "" || strings.TrimSpace(src.Package) == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source project and package are required")
	}
	if strings.TrimSpace(tgt.Project) == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target project is required")
	}
	if strings.TrimSpace(tgt.Package) == "" {
		tgt.Package = src.Package
	}

	cfg, err := s.loadConfig(ctx, req.CheckerOptions)
	if err != nil {
		return CheckResult{}, err
	}
	backend, err := s.openBackend(req.CheckerOptions, cfg)
	if err != nil {
		return CheckResult{}, err
	}
	resolver, err := newResolver(cfg, backend)
	if err != nil {
		return CheckResult{}, err
	}
	candidates := resolver.Candidates.CandidatesFor(ctx, tgt.Package)
	decision := resolver.Resolve(ctx, src, tgt, cfg.HistoryLimit)
	log.Ctx(ctx).Info().
		Str("source", src.String()).
		Str("target", tgt.String()).
		Str("verdict", string(decision.Verdict)).
		Msg(decision.Reason)
	return CheckResult{Candidates: candidates, Decision: decision}, nil
}

package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"factory-checker/internal/policies"
	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

var pendingStates = []types.RequestState{types.RequestStateNew, types.RequestStateReview}

// SubmissionResolver decides whether a submission's content is already
// upstream, or on its way there.
type SubmissionResolver struct {
	Router          NamespaceRouter
	Candidates      UpstreamCandidateResolver
	Oracle          SourceIdentityOracle
	History         HistoryMatcher
	Chain           ReviewChainEvaluator
	BuildService    ports.BuildServicePort
	DefaultEndpoint string
	HistoryLimit    int
}

func NewSubmissionResolver(cfg types.CheckerConfig, buildService ports.BuildServicePort, lookup ports.UpstreamLookupPort) (SubmissionResolver, error) {
	if buildService == nil {
		return SubmissionResolver{}, configurationError("resolver requires a build service port")
	}
	if len(cfg.UpstreamProjects) == 0 {
		return SubmissionResolver{}, configurationError("resolver requires at least one upstream project")
	}
	if cfg.APIURL == "" {
		return SubmissionResolver{}, configurationError("resolver requires an api url")
	}
	oracle := NewSourceIdentityOracle(buildService)
	policy := policies.NewReviewPolicy(cfg.StagingPrefix, cfg.RepoCheckerUser)
	return SubmissionResolver{
		Router:          NewNamespaceRouter(cfg.APIURL, cfg.RequestPrefix, cfg.NamespaceMap),
		Candidates:      NewUpstreamCandidateResolver(cfg.UpstreamProjects, lookup),
		Oracle:          oracle,
		History:         NewHistoryMatcher(buildService),
		Chain:           NewReviewChainEvaluator(oracle, policy, cfg.APIURL),
		BuildService:    buildService,
		DefaultEndpoint: cfg.APIURL,
		HistoryLimit:    cfg.HistoryLimit,
	}, nil
}

// Resolve never fails: remote errors turn into an indeterminate decision so
// that a later run can try again.
func (r SubmissionResolver) Resolve(ctx context.Context, src types.SourceCoordinate, tgt types.SourceCoordinate, historyLimit int) types.Decision {
	logger := log.Ctx(ctx)
	limit := historyLimit
	if limit <= 0 {
		limit = r.HistoryLimit
	}
	if limit <= 0 {
		limit = types.DefaultHistoryLimit
	}

	checksum, err := r.Oracle.ChecksumOf(ctx, r.DefaultEndpoint, src)
	if err != nil {
		logger.Info().Err(err).Str("source", src.String()).Msg("could not get source info")
		return types.Decision{
			Verdict: types.VerdictIndeterminate,
			Reason:  fmt.Sprintf("could not get source info for %s", src),
		}
	}
	assert.NotEmpty(ctx, checksum, "source checksum must be set")

	candidates := r.Candidates.CandidatesFor(ctx, tgt.Package)
	var blockers []types.Blocker
	for _, project := range candidates {
		logger.Info().Str("project", project).Str("package", tgt.Package).Msg("checking in project")
		route := r.Router.Route(project)
		if r.History.Matches(ctx, route.Endpoint, route.Project, tgt.Package, checksum, limit) {
			logger.Info().Str("project", project).Str("package", tgt.Package).Msg("package is in project")
			return types.Decision{
				Verdict: types.VerdictAdmissible,
				Reason:  fmt.Sprintf("%s is in %s", tgt.Package, project),
				Project: project,
			}
		}

		evaluation, err := r.checkRequests(ctx, route, tgt.Package, checksum)
		if err != nil {
			blockers = append(blockers, types.Blocker{
				Project: project,
				Reason:  fmt.Sprintf("pending requests for %s/%s could not be listed", project, tgt.Package),
			})
			continue
		}
		if !evaluation.Relevant {
			continue
		}
		switch evaluation.Verdict {
		case types.VerdictAdmissible:
			logger.Info().Str("project", project).Str("request", evaluation.RequestRef).Msg("package already reviewed")
			return types.Decision{
				Verdict:    types.VerdictAdmissible,
				Reason:     fmt.Sprintf("%s already reviewed for %s (%s)", tgt.Package, project, evaluation.RequestRef),
				Project:    project,
				RequestRef: evaluation.RequestRef,
			}
		case types.VerdictIndeterminate:
			blocker := types.Blocker{
				Project:    project,
				RequestRef: evaluation.RequestRef,
				Reason:     evaluation.Reason,
				Anomaly:    evaluation.Anomaly,
			}
			if evaluation.Blocker != nil {
				blocker.Assignee = evaluation.Blocker.String()
			}
			blockers = append(blockers, blocker)
		default:
			logger.Debug().Str("project", project).Str("request", evaluation.RequestRef).Msg("request does not clear submission")
		}
	}

	if len(blockers) > 0 {
		first := blockers[0]
		return types.Decision{
			Verdict:    types.VerdictIndeterminate,
			Reason:     first.Reason,
			Project:    first.Project,
			RequestRef: first.RequestRef,
			Blockers:   blockers,
		}
	}
	logger.Info().Str("package", tgt.Package).Msg("failed source submission check")
	return types.Decision{
		Verdict: types.VerdictInadmissible,
		Reason:  policies.DeclineMessage(candidates),
	}
}

// checkRequests returns the evaluation of the first relevant pending request
// targeting route.Project/pkg. Without one, the first unresolved request
// stands in as an indeterminate match.
func (r SubmissionResolver) checkRequests(ctx context.Context, route types.Route, pkg string, checksum string) (types.RequestEvaluation, error) {
	requests, err := r.BuildService.FindPendingRequests(ctx, route.Endpoint, route.Project, pkg, pendingStates, types.ActionSubmit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("project", route.Project).
			Str("package", pkg).
			Msg("caught error while checking requests")
		return types.RequestEvaluation{}, err
	}
	var unresolved *types.RequestEvaluation
	for _, request := range requests {
		evaluation := r.Chain.Evaluate(ctx, request, route, checksum)
		if evaluation.Relevant {
			return evaluation, nil
		}
		if evaluation.Unresolved && unresolved == nil {
			unresolved = &evaluation
		}
	}
	if unresolved != nil {
		result := *unresolved
		result.Relevant = true
		return result, nil
	}
	return types.RequestEvaluation{}, nil
}

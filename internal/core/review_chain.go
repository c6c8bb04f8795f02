package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

// ReviewChainEvaluator decides what a pending upstream request says about a
// submission with the same content.
type ReviewChainEvaluator struct {
	Oracle          SourceIdentityOracle
	Policy          ports.ReviewPolicyPort
	DefaultEndpoint string
}

func NewReviewChainEvaluator(oracle SourceIdentityOracle, policy ports.ReviewPolicyPort, defaultEndpoint string) ReviewChainEvaluator {
	return ReviewChainEvaluator{
		Oracle:          oracle,
		Policy:          policy,
		DefaultEndpoint: defaultEndpoint,
	}
}

// Evaluate inspects the first action of request whose source checksum equals
// target. Requests without such an action are not relevant, and unresolved
// when some action could not be looked up. Action sources
// are looked up on the default endpoint with the route's project prefix put
// back, since they are addressed through the interconnect.
func (e ReviewChainEvaluator) Evaluate(ctx context.Context, request types.PendingRequest, route types.Route, target string) types.RequestEvaluation {
	logger := log.Ctx(ctx)
	ref := RequestRef(route.RequestPrefix, request.ID)
	var failed []string
	for _, action := range request.Actions {
		coord := action.Source
		coord.Project = route.ProjectPrefix + coord.Project
		checksum, err := e.Oracle.ChecksumOf(ctx, e.DefaultEndpoint, coord)
		if err != nil {
			logger.Error().Err(err).Str("request", ref).Str("source", coord.String()).Msg("could not get source info")
			failed = append(failed, coord.String())
			continue
		}
		logger.Debug().Str("request", ref).Str("source", coord.String()).Str("checksum", checksum).Msg("request action")
		if checksum != target {
			logger.Info().Str("request", ref).Str("project", route.Project).Msg("request has different sources")
			continue
		}
		return e.evaluateMatched(ctx, request, ref)
	}
	if len(failed) > 0 {
		return types.RequestEvaluation{
			Unresolved: true,
			Verdict:    types.VerdictIndeterminate,
			RequestRef: ref,
			Reason:     fmt.Sprintf("%s: could not get source info for %s", ref, failed[0]),
		}
	}
	return types.RequestEvaluation{RequestRef: ref}
}

func (e ReviewChainEvaluator) evaluateMatched(ctx context.Context, request types.PendingRequest, ref string) types.RequestEvaluation {
	logger := log.Ctx(ctx)
	result := types.RequestEvaluation{Relevant: true, RequestRef: ref}
	switch request.State {
	case types.RequestStateNew:
		logger.Info().Str("request", ref).Msg("request ok")
		result.Verdict = types.VerdictAdmissible
		result.Reason = fmt.Sprintf("%s ok", ref)
		return result
	case types.RequestStateReview:
	default:
		logger.Error().Str("request", ref).Str("state", string(request.State)).Msg("request state not expected")
		result.Verdict = types.VerdictIndeterminate
		result.Anomaly = true
		result.Reason = fmt.Sprintf("%s in state %s not expected", ref, request.State)
		return result
	}

	logger.Debug().Str("request", ref).Msg("request still in review")
	if len(request.Reviews) == 0 {
		logger.Error().Str("request", ref).Msg("request in state review but no reviews")
		result.Verdict = types.VerdictInadmissible
		result.Anomaly = true
		result.Reason = fmt.Sprintf("%s in state review but no reviews", ref)
		return result
	}
	for _, review := range request.Reviews {
		if e.Policy.AutoSatisfied(review) {
			logger.Info().Str("request", ref).Str("reviewer", review.Assignee.String()).Msg("review ok")
			continue
		}
		if review.State == types.ReviewStateAccepted {
			continue
		}
		blocker := review.Assignee
		logger.Info().Str("request", ref).Str("blocker", blocker.String()).Msg("waiting for review")
		result.Verdict = types.VerdictIndeterminate
		result.Blocker = &blocker
		result.Reason = fmt.Sprintf("%s waiting for review by %s", ref, blocker)
		return result
	}
	result.Verdict = types.VerdictAdmissible
	result.Reason = fmt.Sprintf("%s reviews complete", ref)
	return result
}

package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"factory-checker/internal/adapters"
	"factory-checker/internal/core"
	"factory-checker/internal/policies"
	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

type actionChecker func(ctx context.Context, request types.PendingRequest, action types.RequestAction) types.Decision

// Review works through the review queue and records one outcome per
// request.
func (s Service) Review(ctx context.Context, req ReviewRequest) (ReviewResult, error) {
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return ReviewResult{}, err
	}
	req.Mode = mode
	cfg, err := s.loadConfig(ctx, req.CheckerOptions)
	if err != nil {
		return ReviewResult{}, err
	}
	backend, err := s.openBackend(req.CheckerOptions, cfg)
	if err != nil {
		return ReviewResult{}, err
	}
	return s.review(ctx, req, cfg, backend)
}

func (s Service) review(ctx context.Context, req ReviewRequest, cfg types.CheckerConfig, backend Backend) (ReviewResult, error) {
	logger := log.Ctx(ctx)
	check, err := newActionChecker(req.Mode, cfg, backend)
	if err != nil {
		return ReviewResult{}, err
	}
	queue, err := backend.Queue.PendingReviews(ctx)
	if err != nil {
		return ReviewResult{}, err
	}
	sink := s.reviewSink(req)

	var result ReviewResult
	for _, request := range queue {
		outcome := evaluateRequest(ctx, check, request)
		if err := sink.Record(ctx, outcome); err != nil {
			return ReviewResult{}, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		switch outcome.Action {
		case types.ReviewActionAccept:
			result.Accepted++
		case types.ReviewActionDecline:
			result.Declined++
		default:
			result.Skipped++
		}
	}
	if err := sink.Flush(ctx); err != nil {
		return ReviewResult{}, err
	}
	logger.Info().
		Int("accepted", result.Accepted).
		Int("declined", result.Declined).
		Int("skipped", result.Skipped).
		Msg("review queue processed")
	return result, nil
}

func newActionChecker(mode types.CheckerMode, cfg types.CheckerConfig, backend Backend) (actionChecker, error) {
	resolver, err := newResolver(cfg, backend)
	if err != nil {
		return nil, err
	}
	switch mode {
	case types.CheckerModeTags:
		return core.NewTagChecker(backend.Diff, resolver, cfg.APIURL, cfg.HistoryLimit).CheckAction, nil
	default:
		return func(ctx context.Context, _ types.PendingRequest, action types.RequestAction) types.Decision {
			if action.Type != types.ActionSubmit {
				return types.Decision{
					Verdict: types.VerdictIndeterminate,
					Reason:  fmt.Sprintf("no source check for %s actions", action.Type),
				}
			}
			return resolver.Resolve(ctx, action.Source, action.Target, cfg.HistoryLimit)
		}, nil
	}
}

// evaluateRequest checks every action. One declined action declines the
// request; otherwise any undecided action leaves it for a later run.
func evaluateRequest(ctx context.Context, check actionChecker, request types.PendingRequest) types.ReviewOutcome {
	if len(request.Actions) == 0 {
		return types.ReviewOutcome{
			RequestID: request.ID,
			Action:    types.ReviewActionSkip,
			Verdict:   types.VerdictIndeterminate,
			Message:   "request has no actions",
		}
	}
	var combined *types.Decision
	for _, action := range request.Actions {
		decision := check(ctx, request, action)
		log.Ctx(ctx).Debug().
			Str("request", request.ID).
			Str("action", string(action.Type)).
			Str("verdict", string(decision.Verdict)).
			Msg(decision.Reason)
		switch {
		case decision.Verdict == types.VerdictInadmissible:
			combined = &decision
		case combined == nil:
			combined = &decision
		case combined.Verdict == types.VerdictAdmissible && decision.Verdict != types.VerdictAdmissible:
			combined = &decision
		}
		if combined.Verdict == types.VerdictInadmissible {
			break
		}
	}
	outcome := policies.ReviewActionFor(*combined)
	outcome.RequestID = request.ID
	return outcome
}

func (s Service) reviewSink(req ReviewRequest) ports.ReviewSinkPort {
	if req.DryRun || req.ReportPath == "" {
		return adapters.NewReviewLogSink()
	}
	sink := adapters.NewReviewReportFileAdapter(req.ReportPath, req.Mode)
	if s.Clock != nil {
		sink.Now = s.Clock
	}
	return sink
}

func normalizeMode(mode types.CheckerMode) (types.CheckerMode, error) {
	switch mode {
	case "":
		return types.CheckerModeSource, nil
	case types.CheckerModeSource, types.CheckerModeTags:
		return mode, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown checker mode %q", mode))
	}
}

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"factory-checker/internal/policies"
	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

type admissibilityResolver interface {
	Resolve(ctx context.Context, src types.SourceCoordinate, tgt types.SourceCoordinate, historyLimit int) types.Decision
}

// TagChecker requires submissions to reference a tracked issue unless the
// same content is already upstream.
type TagChecker struct {
	Diff         ports.SourceDiffPort
	Resolver     admissibilityResolver
	Endpoint     string
	HistoryLimit int
}

func NewTagChecker(diff ports.SourceDiffPort, resolver admissibilityResolver, endpoint string, historyLimit int) TagChecker {
	return TagChecker{
		Diff:         diff,
		Resolver:     resolver,
		Endpoint:     endpoint,
		HistoryLimit: historyLimit,
	}
}

func (c TagChecker) CheckAction(ctx context.Context, request types.PendingRequest, action types.RequestAction) types.Decision {
	switch action.Type {
	case types.ActionSubmit:
		tags := c.checkTagInRequest(ctx, action)
		if tags.Verdict == types.VerdictAdmissible {
			return tags
		}
		upstream := c.checkTagNotRequired(ctx, request, action)
		if upstream.Verdict != types.VerdictInadmissible {
			return upstream
		}
		if tags.Verdict == types.VerdictInadmissible {
			return tags
		}
		return types.Decision{Verdict: types.VerdictInadmissible, Reason: policies.MissingIssueReferenceMessage}
	case types.ActionMaintenanceIncident, types.ActionMaintenanceRelease:
		return c.checkTagInRequest(ctx, action)
	default:
		return types.Decision{
			Verdict: types.VerdictAdmissible,
			Reason:  fmt.Sprintf("no tag check for %s actions", action.Type),
		}
	}
}

func (c TagChecker) checkTagInRequest(ctx context.Context, action types.RequestAction) types.Decision {
	logger := log.Ctx(ctx)
	issues, err := c.Diff.DiffIssues(ctx, c.Endpoint, action)
	if err != nil {
		exists, existsErr := c.Diff.PackageExists(ctx, c.Endpoint, action.Target.Project, action.Target.Package)
		if existsErr == nil && !exists {
			return types.Decision{Verdict: types.VerdictAdmissible, Reason: "New package"}
		}
		logger.Debug().Err(err).Str("source", action.Source.String()).Msg("error loading diff, assume transient error")
		return types.Decision{
			Verdict: types.VerdictIndeterminate,
			Reason:  fmt.Sprintf("could not load diff for %s", action.Source),
		}
	}
	if issues.Total == 0 {
		logger.Debug().Str("source", action.Source.String()).Msg("diff contains no tags")
		return types.Decision{Verdict: types.VerdictInadmissible, Reason: policies.MissingIssueReferenceMessage}
	}
	if issues.Deleted > 0 {
		return types.Decision{
			Verdict: types.VerdictInadmissible,
			Reason:  fmt.Sprintf("%d issue reference(s) deleted", issues.Deleted),
		}
	}
	return types.Decision{Verdict: types.VerdictAdmissible, Reason: "ok"}
}

// checkTagNotRequired accepts an untagged submission when it changes nothing
// or when its content is already upstream.
func (c TagChecker) checkTagNotRequired(ctx context.Context, request types.PendingRequest, action types.RequestAction) types.Decision {
	diff, err := c.Diff.RequestDiff(ctx, c.Endpoint, request.ID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("request", request.ID).Msg("could not load request diff")
		return types.Decision{
			Verdict: types.VerdictIndeterminate,
			Reason:  fmt.Sprintf("could not load diff of request %s", request.ID),
		}
	}
	if strings.TrimSpace(diff) == "" {
		return types.Decision{Verdict: types.VerdictAdmissible, Reason: "no changes, no tag required"}
	}
	return c.Resolver.Resolve(ctx, action.Source, action.Target, c.HistoryLimit)
}

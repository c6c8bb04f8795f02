package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"factory-checker/internal/types"
)

// Tags runs the issue reference check for one queued request.
func (s Service) Tags(ctx context.Context, req TagsRequest) (TagsResult, error) {
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		return TagsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("request id is required")
	}
	cfg, err := s.loadConfig(ctx, req.CheckerOptions)
	if err != nil {
		return TagsResult{}, err
	}
	backend, err := s.openBackend(req.CheckerOptions, cfg)
	if err != nil {
		return TagsResult{}, err
	}
	queue, err := backend.Queue.PendingReviews(ctx)
	if err != nil {
		return TagsResult{}, err
	}
	for _, request := range queue {
		if request.ID != requestID {
			continue
		}
		check, err := newActionChecker(types.CheckerModeTags, cfg, backend)
		if err != nil {
			return TagsResult{}, err
		}
		return TagsResult{Outcome: evaluateRequest(ctx, check, request)}, nil
	}
	return TagsResult{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("request " + requestID + " is not in the review queue")
}

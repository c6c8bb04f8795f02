package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

// HistoryMatcher looks for a checksum among the most recent revisions of a
// package.
type HistoryMatcher struct {
	BuildService ports.BuildServicePort
}

func NewHistoryMatcher(buildService ports.BuildServicePort) HistoryMatcher {
	return HistoryMatcher{BuildService: buildService}
}

// Matches reports whether target is one of the last limit revisions.
// Retrieval failures count as no match.
func (m HistoryMatcher) Matches(ctx context.Context, endpoint string, project string, pkg string, target string, limit int) bool {
	if limit <= 0 {
		limit = types.DefaultHistoryLimit
	}
	history, err := m.BuildService.GetHistory(ctx, endpoint, project, pkg, limit)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("project", project).
			Str("package", pkg).
			Msg("history lookup failed")
		return false
	}
	if len(history) > limit {
		history = history[:limit]
	}
	for _, checksum := range history {
		if checksum == target {
			return true
		}
	}
	return false
}

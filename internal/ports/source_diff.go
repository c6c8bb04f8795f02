package ports

import (
	"context"

	"factory-checker/internal/types"
)

// SourceDiffPort exposes the diff queries used by the tag checker.
type SourceDiffPort interface {
	// DiffIssues summarizes the issue references in the diff between the
	// action's source and target.
	DiffIssues(ctx context.Context, endpoint string, action types.RequestAction) (types.IssueSummary, error)
	PackageExists(ctx context.Context, endpoint string, project string, pkg string) (bool, error)
	RequestDiff(ctx context.Context, endpoint string, requestID string) (string, error)
}

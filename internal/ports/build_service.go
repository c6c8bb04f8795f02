package ports

import (
	"context"

	"factory-checker/internal/types"
)

// BuildServicePort is the read-only view of a (possibly federated) build
// service the resolver depends on. Every method may fail transiently; the
// resolver never treats an error as negative evidence.
type BuildServicePort interface {
	// GetSourceInfo returns the content checksum of the source tree at the
	// coordinate. An empty revision means the latest one.
	GetSourceInfo(ctx context.Context, endpoint string, coord types.SourceCoordinate) (string, error)

	// GetHistory returns up to limit checksums of the most recent
	// revisions, most recent first.
	GetHistory(ctx context.Context, endpoint string, project string, pkg string, limit int) ([]string, error)

	// FindPendingRequests lists requests in any of the given states with at
	// least one action of the given type targeting project/pkg.
	FindPendingRequests(ctx context.Context, endpoint string, project string, pkg string, states []types.RequestState, actionType types.ActionType) ([]types.PendingRequest, error)
}

package ports

import (
	"context"

	"factory-checker/internal/types"
)

type ReviewQueuePort interface {
	PendingReviews(ctx context.Context) ([]types.PendingRequest, error)
}

type ReviewSinkPort interface {
	Record(ctx context.Context, outcome types.ReviewOutcome) error
	Flush(ctx context.Context) error
}

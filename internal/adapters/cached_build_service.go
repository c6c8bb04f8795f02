package adapters

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

const defaultSourceCacheSize = 1024

// CachedBuildService memoizes checksums of revision-pinned coordinates.
// Latest-revision lookups, histories and request listings always go to the
// wrapped service since they change between runs.
type CachedBuildService struct {
	Inner   ports.BuildServicePort
	sources *lru.Cache[string, string]
}

func NewCachedBuildService(inner ports.BuildServicePort, size int) (*CachedBuildService, error) {
	if size <= 0 {
		size = defaultSourceCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedBuildService{Inner: inner, sources: cache}, nil
}

func (c *CachedBuildService) GetSourceInfo(ctx context.Context, endpoint string, coord types.SourceCoordinate) (string, error) {
	if coord.Revision == "" {
		return c.Inner.GetSourceInfo(ctx, endpoint, coord)
	}
	key := endpoint + "|" + coord.String()
	if checksum, ok := c.sources.Get(key); ok {
		return checksum, nil
	}
	checksum, err := c.Inner.GetSourceInfo(ctx, endpoint, coord)
	if err != nil {
		return "", err
	}
	c.sources.Add(key, checksum)
	return checksum, nil
}

func (c *CachedBuildService) GetHistory(ctx context.Context, endpoint string, project string, pkg string, limit int) ([]string, error) {
	return c.Inner.GetHistory(ctx, endpoint, project, pkg, limit)
}

func (c *CachedBuildService) FindPendingRequests(ctx context.Context, endpoint string, project string, pkg string, states []types.RequestState, actionType types.ActionType) ([]types.PendingRequest, error) {
	return c.Inner.FindPendingRequests(ctx, endpoint, project, pkg, states, actionType)
}

// Len reports the number of cached checksums.
func (c *CachedBuildService) Len() int {
	return c.sources.Len()
}

// Invalidate purges the cache and invalidates the wrapped service when it
// supports it.
func (c *CachedBuildService) Invalidate() {
	c.sources.Purge()
	if inner, ok := c.Inner.(interface{ Invalidate() }); ok {
		inner.Invalidate()
	}
}

var _ ports.BuildServicePort = (*CachedBuildService)(nil)

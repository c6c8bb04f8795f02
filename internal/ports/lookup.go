package ports

import "context"

// UpstreamLookupPort answers "where does pkg come from" for one default
// upstream project.
type UpstreamLookupPort interface {
	Lookup(ctx context.Context, project string, pkg string) (string, bool)
}

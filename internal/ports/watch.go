package ports

import "context"

// WatchPort calls onChange whenever one of the watched files changes. It
// blocks until ctx is cancelled or onChange returns an error.
type WatchPort interface {
	Watch(ctx context.Context, paths []string, onChange func(ctx context.Context) error) error
}

package app

import (
	"time"

	"factory-checker/internal/adapters"
	"factory-checker/internal/ports"
)

type Service struct {
	ConfigLoader ports.CheckerConfigPort
	Watcher      ports.WatchPort
	OpenBackend  func(snapshotPath string, endpoint string) (Backend, error)
	Clock        func() time.Time
}

func NewService() Service {
	return Service{
		ConfigLoader: adapters.NewCheckerConfigFileAdapter(),
		Watcher:      adapters.NewFileWatchAdapter(0),
		OpenBackend:  OpenSnapshotBackend,
		Clock:        time.Now,
	}
}

// Backend bundles the build service views one run works against.
type Backend struct {
	BuildService ports.BuildServicePort
	Diff         ports.SourceDiffPort
	Queue        ports.ReviewQueuePort
}

// Invalidate drops anything the backend cached from earlier runs.
// Invalidating a component twice is harmless.
func (b Backend) Invalidate() {
	for _, component := range []any{b.BuildService, b.Diff, b.Queue} {
		if inv, ok := component.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
	}
}

// OpenSnapshotBackend serves every query from one snapshot file, with
// revision-pinned checksums memoized in front of it.
func OpenSnapshotBackend(snapshotPath string, endpoint string) (Backend, error) {
	snapshot := adapters.NewBuildServiceSnapshotAdapter(snapshotPath, endpoint)
	cached, err := adapters.NewCachedBuildService(snapshot, 0)
	if err != nil {
		return Backend{}, err
	}
	return Backend{BuildService: cached, Diff: snapshot, Queue: snapshot}, nil
}

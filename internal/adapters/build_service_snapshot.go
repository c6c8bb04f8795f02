package adapters

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

// BuildServiceSnapshotAdapter serves build service queries from a YAML
// snapshot file. The file is read on first use and kept until Invalidate.
type BuildServiceSnapshotAdapter struct {
	Path string
	// Endpoint is where the review queue lives.
	Endpoint string

	mu     sync.Mutex
	cached types.BuildServiceSnapshot
	loaded bool
}

func NewBuildServiceSnapshotAdapter(path string, endpoint string) *BuildServiceSnapshotAdapter {
	return &BuildServiceSnapshotAdapter{Path: path, Endpoint: endpoint}
}

func (a *BuildServiceSnapshotAdapter) GetSourceInfo(_ context.Context, endpoint string, coord types.SourceCoordinate) (string, error) {
	pkg, err := a.findPackage(endpoint, coord.Project, coord.Package)
	if err != nil {
		return "", err
	}
	if coord.Revision == "" {
		if pkg.Latest == "" {
			return "", notInSnapshot(fmt.Sprintf("%s has no latest revision", coord))
		}
		return pkg.Latest, nil
	}
	checksum, ok := pkg.Revisions[coord.Revision]
	if !ok {
		return "", notInSnapshot(fmt.Sprintf("revision %s of %s/%s", coord.Revision, coord.Project, coord.Package))
	}
	return checksum, nil
}

func (a *BuildServiceSnapshotAdapter) GetHistory(_ context.Context, endpoint string, project string, pkg string, limit int) ([]string, error) {
	entry, err := a.findPackage(endpoint, project, pkg)
	if err != nil {
		return nil, err
	}
	history := entry.History
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return append([]string(nil), history...), nil
}

func (a *BuildServiceSnapshotAdapter) FindPendingRequests(_ context.Context, endpoint string, project string, pkg string, states []types.RequestState, actionType types.ActionType) ([]types.PendingRequest, error) {
	snapshot, err := a.endpoint(endpoint)
	if err != nil {
		return nil, err
	}
	var matches []types.PendingRequest
	for _, request := range snapshot.Requests {
		if !slices.Contains(states, request.State) {
			continue
		}
		for _, action := range request.Actions {
			if action.Type == actionType && action.Target.Project == project && action.Target.Package == pkg {
				matches = append(matches, request)
				break
			}
		}
	}
	return matches, nil
}

// DiffIssues reports the issue summary recorded on the action's source
// package.
func (a *BuildServiceSnapshotAdapter) DiffIssues(_ context.Context, endpoint string, action types.RequestAction) (types.IssueSummary, error) {
	pkg, err := a.findPackage(endpoint, action.Source.Project, action.Source.Package)
	if err != nil {
		return types.IssueSummary{}, err
	}
	if pkg.DiffError {
		return types.IssueSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("diff of %s against %s failed", action.Source, action.Target))
	}
	return pkg.Issues, nil
}

func (a *BuildServiceSnapshotAdapter) PackageExists(_ context.Context, endpoint string, project string, pkg string) (bool, error) {
	snapshot, err := a.endpoint(endpoint)
	if err != nil {
		return false, err
	}
	_, ok := lookupPackage(snapshot, project, pkg)
	return ok, nil
}

func (a *BuildServiceSnapshotAdapter) RequestDiff(_ context.Context, endpoint string, requestID string) (string, error) {
	snapshot, err := a.endpoint(endpoint)
	if err != nil {
		return "", err
	}
	for _, diff := range snapshot.Diffs {
		if diff.RequestID == requestID {
			return diff.Diff, nil
		}
	}
	return "", notInSnapshot(fmt.Sprintf("diff of request %s", requestID))
}

// PendingReviews returns the queued requests of the review endpoint in
// queue order.
func (a *BuildServiceSnapshotAdapter) PendingReviews(_ context.Context) ([]types.PendingRequest, error) {
	snapshot, err := a.load()
	if err != nil {
		return nil, err
	}
	primary, ok := snapshot.Endpoints[a.Endpoint]
	if !ok {
		return nil, notInSnapshot(fmt.Sprintf("endpoint %s", a.Endpoint))
	}
	byID := make(map[string]types.PendingRequest, len(primary.Requests))
	for _, request := range primary.Requests {
		byID[request.ID] = request
	}
	queue := make([]types.PendingRequest, 0, len(snapshot.Queue))
	for _, id := range snapshot.Queue {
		request, ok := byID[id]
		if !ok {
			return nil, notInSnapshot(fmt.Sprintf("queued request %s", id))
		}
		queue = append(queue, request)
	}
	return queue, nil
}

// Invalidate drops the cached snapshot so the next query rereads the file.
func (a *BuildServiceSnapshotAdapter) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = types.BuildServiceSnapshot{}
	a.loaded = false
}

func (a *BuildServiceSnapshotAdapter) findPackage(endpoint string, project string, pkg string) (types.PackageSnapshot, error) {
	snapshot, err := a.endpoint(endpoint)
	if err != nil {
		return types.PackageSnapshot{}, err
	}
	entry, ok := lookupPackage(snapshot, project, pkg)
	if !ok {
		return types.PackageSnapshot{}, notInSnapshot(fmt.Sprintf("package %s/%s on %s", project, pkg, endpoint))
	}
	return entry, nil
}

func (a *BuildServiceSnapshotAdapter) endpoint(endpoint string) (types.EndpointSnapshot, error) {
	snapshot, err := a.load()
	if err != nil {
		return types.EndpointSnapshot{}, err
	}
	entry, ok := snapshot.Endpoints[endpoint]
	if !ok {
		return types.EndpointSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("endpoint %s unreachable", endpoint))
	}
	return entry, nil
}

func (a *BuildServiceSnapshotAdapter) load() (types.BuildServiceSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.BuildServiceSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("build service snapshot not found").
			WithCause(err)
	}
	var snapshot types.BuildServiceSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return types.BuildServiceSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid build service snapshot format").
			WithCause(err)
	}
	if snapshot.Endpoints == nil {
		snapshot.Endpoints = map[string]types.EndpointSnapshot{}
	}
	a.cached = snapshot
	a.loaded = true
	return snapshot, nil
}

func lookupPackage(snapshot types.EndpointSnapshot, project string, pkg string) (types.PackageSnapshot, bool) {
	for _, entry := range snapshot.Packages {
		if entry.Project == project && entry.Package == pkg {
			return entry, true
		}
	}
	return types.PackageSnapshot{}, false
}

func notInSnapshot(what string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(what + " not in snapshot")
}

var (
	_ ports.BuildServicePort = (*BuildServiceSnapshotAdapter)(nil)
	_ ports.SourceDiffPort   = (*BuildServiceSnapshotAdapter)(nil)
	_ ports.ReviewQueuePort  = (*BuildServiceSnapshotAdapter)(nil)
)

package core

import (
	"context"
	"errors"

	"factory-checker/internal/types"
)

const (
	testAPI    = "https://api.example.org"
	testRemote = "https://api.opensuse.org"
)

var errTransport = errors.New("connection reset")

type fakeBuildService struct {
	sources      map[string]string
	sourceErrs   map[string]error
	history      map[string][]string
	historyErrs  map[string]error
	requests     map[string][]types.PendingRequest
	requestErrs  map[string]error
	historyCalls []string
	requestCalls []string
}

func newFakeBuildService() *fakeBuildService {
	return &fakeBuildService{
		sources:     map[string]string{},
		sourceErrs:  map[string]error{},
		history:     map[string][]string{},
		historyErrs: map[string]error{},
		requests:    map[string][]types.PendingRequest{},
		requestErrs: map[string]error{},
	}
}

func sourceKey(endpoint string, coord types.SourceCoordinate) string {
	return endpoint + "|" + coord.String()
}

func packageKey(endpoint string, project string, pkg string) string {
	return endpoint + "|" + project + "/" + pkg
}

func (f *fakeBuildService) GetSourceInfo(_ context.Context, endpoint string, coord types.SourceCoordinate) (string, error) {
	key := sourceKey(endpoint, coord)
	if err, ok := f.sourceErrs[key]; ok {
		return "", err
	}
	checksum, ok := f.sources[key]
	if !ok {
		return "", errors.New("404 not found")
	}
	return checksum, nil
}

func (f *fakeBuildService) GetHistory(_ context.Context, endpoint string, project string, pkg string, limit int) ([]string, error) {
	key := packageKey(endpoint, project, pkg)
	f.historyCalls = append(f.historyCalls, key)
	if err, ok := f.historyErrs[key]; ok {
		return nil, err
	}
	history := f.history[key]
	if len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func (f *fakeBuildService) FindPendingRequests(_ context.Context, endpoint string, project string, pkg string, _ []types.RequestState, _ types.ActionType) ([]types.PendingRequest, error) {
	key := packageKey(endpoint, project, pkg)
	f.requestCalls = append(f.requestCalls, key)
	if err, ok := f.requestErrs[key]; ok {
		return nil, err
	}
	return f.requests[key], nil
}

type fakeLookup map[string]map[string]string

func (f fakeLookup) Lookup(_ context.Context, project string, pkg string) (string, bool) {
	upstream, ok := f[project][pkg]
	return upstream, ok
}

func testConfig() types.CheckerConfig {
	return types.CheckerConfig{
		APIURL:           testAPI,
		UpstreamProjects: []string{"openSUSE:Factory", "openSUSE.org:openSUSE:Factory"},
		NamespaceMap: []types.NamespaceMapping{
			{Prefix: "openSUSE.org:", Endpoint: testRemote, RequestPrefix: "obs"},
		},
		HistoryLimit:    types.DefaultHistoryLimit,
		StagingPrefix:   types.DefaultStagingPrefix,
		RepoCheckerUser: types.DefaultRepoCheckerUser,
		RequestPrefix:   types.DefaultRequestPrefix,
	}
}

func submitRequest(id string, state types.RequestState, source types.SourceCoordinate, reviews ...types.Review) types.PendingRequest {
	return types.PendingRequest{
		ID:    id,
		State: state,
		Actions: []types.RequestAction{{
			Type:   types.ActionSubmit,
			Source: source,
			Target: types.SourceCoordinate{Project: "openSUSE:Factory", Package: "nano"},
		}},
		Reviews: reviews,
	}
}

func userReview(state types.ReviewState, name string) types.Review {
	return types.Review{State: state, Assignee: types.Assignee{Kind: types.AssigneeUser, Name: name}}
}

func projectReview(state types.ReviewState, name string) types.Review {
	return types.Review{State: state, Assignee: types.Assignee{Kind: types.AssigneeProject, Name: name}}
}

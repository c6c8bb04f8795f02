package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"factory-checker/internal/types"
)

const declineBoth = "the package needs to be accepted in openSUSE:Factory or openSUSE.org:openSUSE:Factory first"

func fixtureOptions(t *testing.T) CheckerOptions {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return CheckerOptions{
		ConfigPath:   filepath.Join(root, "fixtures", "checker.yaml"),
		SnapshotPath: filepath.Join(root, "fixtures", "snapshot.yaml"),
	}
}

func TestCheckApp(t *testing.T) {
	service := NewService()
	opts := fixtureOptions(t)

	result, err := service.Check(t.Context(), CheckRequest{
		CheckerOptions: opts,
		Source:         types.SourceCoordinate{Project: "editors", Package: "nano", Revision: "25"},
		Target:         types.SourceCoordinate{Project: "openSUSE:Leap:16.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"openSUSE:Factory"}, result.Candidates)
	assert.Equal(t, types.VerdictAdmissible, result.Decision.Verdict)
	assert.Equal(t, "nano is in openSUSE:Factory", result.Decision.Reason)

	result, err = service.Check(t.Context(), CheckRequest{
		CheckerOptions: opts,
		Source:         types.SourceCoordinate{Project: "home:joe", Package: "emacs", Revision: "3"},
		Target:         types.SourceCoordinate{Project: "openSUSE:Leap:16.0", Package: "emacs"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.VerdictInadmissible, result.Decision.Verdict)
	assert.Equal(t, declineBoth, result.Decision.Reason)
}

func TestCheckAppOptionsOverrideConfig(t *testing.T) {
	opts := fixtureOptions(t)
	opts.UpstreamProjects = []string{"openSUSE:Factory"}

	result, err := NewService().Check(t.Context(), CheckRequest{
		CheckerOptions: opts,
		Source:         types.SourceCoordinate{Project: "home:joe", Package: "emacs", Revision: "3"},
		Target:         types.SourceCoordinate{Project: "openSUSE:Leap:16.0", Package: "emacs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the package needs to be accepted in openSUSE:Factory first", result.Decision.Reason)
}

func TestCheckAppRequiresInputs(t *testing.T) {
	service := NewService()
	opts := fixtureOptions(t)

	_, err := service.Check(t.Context(), CheckRequest{CheckerOptions: opts, Target: types.SourceCoordinate{Project: "openSUSE:Leap:16.0"}})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	opts.SnapshotPath = ""
	_, err = service.Check(t.Context(), CheckRequest{
		CheckerOptions: opts,
		Source:         types.SourceCoordinate{Project: "editors", Package: "nano"},
		Target:         types.SourceCoordinate{Project: "openSUSE:Leap:16.0"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReviewAppSourceMode(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "review.yaml")
	service := NewService()
	service.Clock = func() time.Time { return time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC) }

	result, err := service.Review(t.Context(), ReviewRequest{
		CheckerOptions: fixtureOptions(t),
		ReportPath:     reportPath,
	})
	require.NoError(t, err)

	want := []types.ReviewOutcome{
		{RequestID: "101", Action: types.ReviewActionAccept, Verdict: types.VerdictAdmissible, Message: "nano is in openSUSE:Factory"},
		{RequestID: "102", Action: types.ReviewActionSkip, Verdict: types.VerdictIndeterminate, Message: "sr#500 waiting for review by factory-maintainers"},
		{RequestID: "103", Action: types.ReviewActionDecline, Verdict: types.VerdictInadmissible, Message: declineBoth},
		{RequestID: "104", Action: types.ReviewActionAccept, Verdict: types.VerdictAdmissible, Message: "tetris already reviewed for openSUSE.org:openSUSE:Factory (obs#900)"},
	}
	if diff := cmp.Diff(want, result.Outcomes); diff != "" {
		t.Fatalf("unexpected outcomes (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 1, result.Declined)
	assert.Equal(t, 1, result.Skipped)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report types.ReviewReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, "2026-03-01T08:30:00Z", report.GeneratedAt)
	assert.Equal(t, types.CheckerModeSource, report.Mode)
	if diff := cmp.Diff(want, report.Outcomes); diff != "" {
		t.Fatalf("unexpected report outcomes (-want +got):\n%s", diff)
	}
}

func TestReviewAppTagsMode(t *testing.T) {
	result, err := NewService().Review(t.Context(), ReviewRequest{
		CheckerOptions: fixtureOptions(t),
		Mode:           types.CheckerModeTags,
		DryRun:         true,
	})
	require.NoError(t, err)

	got := map[string]string{}
	for _, outcome := range result.Outcomes {
		got[outcome.RequestID] = outcome.Message
	}
	want := map[string]string{
		"101": "ok",
		"102": "sr#500 waiting for review by factory-maintainers",
		"103": "New package",
		"104": "no changes, no tag required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, result.Accepted)
	assert.Equal(t, 1, result.Skipped)
}

func TestReviewAppRejectsUnknownMode(t *testing.T) {
	_, err := NewService().Review(t.Context(), ReviewRequest{CheckerOptions: fixtureOptions(t), Mode: "licenses"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTagsApp(t *testing.T) {
	service := NewService()
	result, err := service.Tags(t.Context(), TagsRequest{CheckerOptions: fixtureOptions(t), RequestID: "103"})
	require.NoError(t, err)
	assert.Equal(t, types.ReviewActionAccept, result.Outcome.Action)
	assert.Equal(t, "New package", result.Outcome.Message)

	_, err = service.Tags(t.Context(), TagsRequest{CheckerOptions: fixtureOptions(t), RequestID: "42"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestCandidatesApp(t *testing.T) {
	result, err := NewService().Candidates(t.Context(), CandidatesRequest{
		CheckerOptions: CheckerOptions{ConfigPath: fixtureOptions(t).ConfigPath},
		Package:        "vim",
	})
	require.NoError(t, err)
	want := []types.Route{
		{Endpoint: "https://api.example.org", Project: "openSUSE:Factory", RequestPrefix: "sr"},
		{Endpoint: "https://api.opensuse.org", Project: "openSUSE:Factory", ProjectPrefix: "openSUSE.org:", RequestPrefix: "obs"},
	}
	if diff := cmp.Diff(want, result.Routes); diff != "" {
		t.Fatalf("unexpected routes (-want +got):\n%s", diff)
	}

	result, err = NewService().Candidates(t.Context(), CandidatesRequest{
		CheckerOptions: CheckerOptions{ConfigPath: fixtureOptions(t).ConfigPath},
		Package:        "kernel-source",
	})
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, "openSUSE:Factory:Kernel", result.Routes[0].Project)
}

type fakeWatcher struct {
	paths   []string
	calls   [][]string
	cycles  int
	onCycle func(call int)
}

func (f *fakeWatcher) Watch(ctx context.Context, paths []string, onChange func(ctx context.Context) error) error {
	f.paths = paths
	f.calls = append(f.calls, paths)
	for range f.cycles {
		if f.onCycle != nil {
			f.onCycle(len(f.calls) - 1)
		}
		if err := onChange(ctx); err != nil {
			return err
		}
	}
	return nil
}

func TestWatchAppRerunsReview(t *testing.T) {
	opts := fixtureOptions(t)
	watcher := &fakeWatcher{cycles: 2}
	service := NewService()
	service.Watcher = watcher
	opened := 0
	service.OpenBackend = func(snapshotPath string, endpoint string) (Backend, error) {
		opened++
		return OpenSnapshotBackend(snapshotPath, endpoint)
	}

	err := service.Watch(t.Context(), WatchRequest{ReviewRequest: ReviewRequest{CheckerOptions: opts, DryRun: true}})
	require.NoError(t, err)
	assert.Equal(t, 1, opened)
	root := filepath.Dir(opts.ConfigPath)
	want := []string{opts.ConfigPath, opts.SnapshotPath, filepath.Join(root, "factory-lookup.yaml")}
	if diff := cmp.Diff(want, watcher.paths); diff != "" {
		t.Fatalf("unexpected watch paths (-want +got):\n%s", diff)
	}
}

func TestWatchAppFollowsConfigChanges(t *testing.T) {
	fixtures := fixtureOptions(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "checker.yaml")
	lookup, err := os.ReadFile(filepath.Join(filepath.Dir(fixtures.ConfigPath), "factory-lookup.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "factory-lookup.yaml"), lookup, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "remote-lookup.yaml"), []byte("tetris: openSUSE.org:openSUSE:Factory\n"), 0o644))
	writeConfig := func(apiURL string, lookupFiles string) {
		content := "api_url: " + apiURL + "\n" +
			"upstream_projects:\n  - openSUSE:Factory\n  - openSUSE.org:openSUSE:Factory\n" +
			"lookup_files:\n" + lookupFiles +
			"namespace_map:\n  - prefix: \"openSUSE.org:\"\n    endpoint: https://api.opensuse.org\n    request_prefix: obs\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	}
	writeConfig("https://api.example.org", "  openSUSE:Factory: factory-lookup.yaml\n")

	watcher := &fakeWatcher{cycles: 1}
	watcher.onCycle = func(call int) {
		if call == 0 {
			writeConfig("https://api.opensuse.org",
				"  openSUSE:Factory: factory-lookup.yaml\n  openSUSE.org:openSUSE:Factory: remote-lookup.yaml\n")
		}
	}
	service := NewService()
	service.Watcher = watcher
	var endpoints []string
	service.OpenBackend = func(snapshotPath string, endpoint string) (Backend, error) {
		endpoints = append(endpoints, endpoint)
		return OpenSnapshotBackend(snapshotPath, endpoint)
	}
	opts := CheckerOptions{ConfigPath: configPath, SnapshotPath: fixtures.SnapshotPath}

	err = service.Watch(t.Context(), WatchRequest{ReviewRequest: ReviewRequest{CheckerOptions: opts, DryRun: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.example.org", "https://api.opensuse.org"}, endpoints)
	want := [][]string{
		{configPath, fixtures.SnapshotPath, filepath.Join(dir, "factory-lookup.yaml")},
		{configPath, fixtures.SnapshotPath, filepath.Join(dir, "factory-lookup.yaml"), filepath.Join(dir, "remote-lookup.yaml")},
	}
	if diff := cmp.Diff(want, watcher.calls); diff != "" {
		t.Fatalf("unexpected watch paths (-want +got):\n%s", diff)
	}
}

func TestEvaluateRequestCombinesActions(t *testing.T) {
	verdicts := map[string]types.Decision{
		"a": {Verdict: types.VerdictAdmissible, Reason: "a ok"},
		"b": {Verdict: types.VerdictIndeterminate, Reason: "b pending"},
		"c": {Verdict: types.VerdictInadmissible, Reason: "c missing"},
	}
	check := func(_ context.Context, _ types.PendingRequest, action types.RequestAction) types.Decision {
		return verdicts[action.Source.Package]
	}
	request := func(pkgs ...string) types.PendingRequest {
		req := types.PendingRequest{ID: "1"}
		for _, pkg := range pkgs {
			req.Actions = append(req.Actions, types.RequestAction{Type: types.ActionSubmit, Source: types.SourceCoordinate{Package: pkg}})
		}
		return req
	}

	tests := []struct {
		name       string
		request    types.PendingRequest
		wantAction types.ReviewAction
		wantMsg    string
	}{
		{name: "all admissible", request: request("a", "a"), wantAction: types.ReviewActionAccept, wantMsg: "a ok"},
		{name: "pending wins over admissible", request: request("a", "b"), wantAction: types.ReviewActionSkip, wantMsg: "b pending"},
		{name: "decline wins", request: request("b", "c", "a"), wantAction: types.ReviewActionDecline, wantMsg: "c missing"},
		{name: "no actions", request: types.PendingRequest{ID: "1"}, wantAction: types.ReviewActionSkip, wantMsg: "request has no actions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := evaluateRequest(t.Context(), check, tt.request)
			assert.Equal(t, "1", outcome.RequestID)
			assert.Equal(t, tt.wantAction, outcome.Action)
			assert.Equal(t, tt.wantMsg, outcome.Message)
		})
	}
}

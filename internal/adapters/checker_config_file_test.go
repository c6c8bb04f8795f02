package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factory-checker/internal/types"
)

func TestCheckerConfigFileAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checker.yaml")
	content := `
api_url: https://api.example.org
upstream_projects:
  - openSUSE:Factory
  - openSUSE.org:openSUSE:Factory
overrides:
  openSUSE:Factory:
    vim: openSUSE:Factory:NonFree
lookup_files:
  openSUSE:Factory: lookup.yaml
namespace_map:
  - prefix: "openSUSE.org:"
    endpoint: https://api.opensuse.org
    request_prefix: obs
history_limit: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewCheckerConfigFileAdapter().LoadConfig(path)
	require.NoError(t, err)
	want := types.CheckerConfig{
		APIURL:           "https://api.example.org",
		UpstreamProjects: []string{"openSUSE:Factory", "openSUSE.org:openSUSE:Factory"},
		Overrides:        map[string]map[string]string{"openSUSE:Factory": {"vim": "openSUSE:Factory:NonFree"}},
		LookupFiles:      map[string]string{"openSUSE:Factory": filepath.Join(dir, "lookup.yaml")},
		NamespaceMap: []types.NamespaceMapping{
			{Prefix: "openSUSE.org:", Endpoint: "https://api.opensuse.org", RequestPrefix: "obs"},
		},
		HistoryLimit: 3,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestCheckerConfigFileAdapterErrors(t *testing.T) {
	adapter := NewCheckerConfigFileAdapter()

	cfg, err := adapter.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, types.CheckerConfig{}, cfg)

	_, err = adapter.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upstream_projects: {"), 0o644))
	_, err = adapter.LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

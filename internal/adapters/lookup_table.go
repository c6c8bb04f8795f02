package adapters

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"factory-checker/internal/ports"
)

// LookupTableAdapter answers upstream lookups from the configured overrides
// and from per-project lookup files mapping package names to projects.
// Overrides win over file entries.
type LookupTableAdapter struct {
	Overrides map[string]map[string]string
	Files     map[string]string

	mu     sync.Mutex
	tables map[string]map[string]string
}

func NewLookupTableAdapter(overrides map[string]map[string]string, files map[string]string) *LookupTableAdapter {
	return &LookupTableAdapter{
		Overrides: overrides,
		Files:     files,
		tables:    map[string]map[string]string{},
	}
}

func (a *LookupTableAdapter) Lookup(ctx context.Context, project string, pkg string) (string, bool) {
	if upstream, ok := a.Overrides[project][pkg]; ok && strings.TrimSpace(upstream) != "" {
		return upstream, true
	}
	path, ok := a.Files[project]
	if !ok {
		return "", false
	}
	table, err := a.table(project, path)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("project", project).Str("path", path).Msg("lookup file unavailable")
		return "", false
	}
	upstream, ok := table[pkg]
	if !ok || strings.TrimSpace(upstream) == "" {
		return "", false
	}
	return upstream, true
}

func (a *LookupTableAdapter) table(project string, path string) (map[string]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if table, ok := a.tables[project]; ok {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lookup file not found").
			WithCause(err)
	}
	table := map[string]string{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid lookup file format").
			WithCause(err)
	}
	if a.tables == nil {
		a.tables = map[string]map[string]string{}
	}
	a.tables[project] = table
	return table, nil
}

var _ ports.UpstreamLookupPort = (*LookupTableAdapter)(nil)

package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

type CheckerConfigFileAdapter struct{}

func NewCheckerConfigFileAdapter() CheckerConfigFileAdapter {
	return CheckerConfigFileAdapter{}
}

// LoadConfig reads a checker config file. An empty path yields the zero
// config, which normalizes to the built-in defaults. Relative lookup file
// paths are taken relative to the config file.
func (a CheckerConfigFileAdapter) LoadConfig(path string) (types.CheckerConfig, error) {
	if path == "" {
		return types.CheckerConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CheckerConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("checker config file not found").
			WithCause(err)
	}
	var cfg types.CheckerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.CheckerConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse checker config yaml").
			WithCause(err)
	}
	base := filepath.Dir(path)
	for project, lookupPath := range cfg.LookupFiles {
		if lookupPath != "" && !filepath.IsAbs(lookupPath) {
			cfg.LookupFiles[project] = filepath.Join(base, lookupPath)
		}
	}
	return cfg, nil
}

var _ ports.CheckerConfigPort = CheckerConfigFileAdapter{}

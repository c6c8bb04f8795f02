package ports

import "factory-checker/internal/types"

type CheckerConfigPort interface {
	LoadConfig(path string) (types.CheckerConfig, error)
}

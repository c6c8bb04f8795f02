package core

import (
	"context"
	"errors"
	"strings"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

var errEmptyChecksum = errors.New("empty checksum")

// SourceIdentityOracle resolves a source coordinate to its content checksum.
type SourceIdentityOracle struct {
	BuildService ports.BuildServicePort
}

func NewSourceIdentityOracle(buildService ports.BuildServicePort) SourceIdentityOracle {
	return SourceIdentityOracle{BuildService: buildService}
}

func (o SourceIdentityOracle) ChecksumOf(ctx context.Context, endpoint string, coord types.SourceCoordinate) (string, error) {
	checksum, err := o.BuildService.GetSourceInfo(ctx, endpoint, coord)
	if err != nil {
		return "", lookupFailed(endpoint, coord, err)
	}
	checksum = strings.TrimSpace(checksum)
	if checksum == "" {
		return "", lookupFailed(endpoint, coord, errEmptyChecksum)
	}
	return checksum, nil
}

package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"factory-checker/internal/types"
)

// lookupFailed marks a remote query that produced no usable answer. It is
// never evidence that content is absent upstream.
func lookupFailed(endpoint string, coord types.SourceCoordinate, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("lookup failed for %s on %s", coord, endpoint)).
		WithCause(cause)
}

func configurationError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

package cli

import (
	"errors"

	"github.com/matzehuels/chipmap/pkg/manifest"
	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

// Exit codes distinguish failure classes so scripts can react to a
// specific violation without parsing error text.
const (
	ExitOK           = 0
	ExitError        = 1 // any failure not covered below
	ExitMalformed    = 2 // unreadable or malformed description
	ExitOutOfBounds  = 3 // region exceeds the addressable range
	ExitOverlap      = 4 // sibling regions overlap
	ExitNotContained = 5 // child escapes its parent
	ExitOverflow     = 6 // minimum extents exceed the axis
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		malformed    *memmap.MalformedRegionError
		outOfBounds  *memmap.OutOfBoundsError
		overlap      *memmap.OverlapError
		notContained *memmap.NotContainedError
		overflow     *layout.OverflowError
	)

	switch {
	case errors.Is(err, manifest.ErrDecode),
		errors.Is(err, memmap.ErrEmptyChipName),
		errors.Is(err, memmap.ErrInvalidAddressWidth),
		errors.As(err, &malformed):
		return ExitMalformed
	case errors.As(err, &outOfBounds):
		return ExitOutOfBounds
	case errors.As(err, &overlap):
		return ExitOverlap
	case errors.As(err, &notContained):
		return ExitNotContained
	case errors.As(err, &overflow):
		return ExitOverflow
	default:
		return ExitError
	}
}

package memmap

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChipName is returned by [BuildChip] when the chip name is
	// empty. Every chip needs an identifier for diagnostics and output.
	ErrEmptyChipName = errors.New("chip name must not be empty")

	// ErrInvalidAddressWidth is returned by [BuildChip] when the address
	// bus width is outside 1..64 bits.
	ErrInvalidAddressWidth = errors.New("address width must be between 1 and 64 bits")
)

// MalformedRegionError reports a single-region defect caught at
// construction time: zero size, empty label, or a parent reference that
// doesn't point at an earlier descriptor.
type MalformedRegionError struct {
	Label  string // offending region's label, may be empty
	Index  int    // position in the descriptor sequence
	Reason string
}

func (e *MalformedRegionError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("malformed region at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed region %q at index %d: %s", e.Label, e.Index, e.Reason)
}

// OutOfBoundsError reports a top-level region that doesn't fit the chip's
// address space, or a region whose end would wrap around the address bus.
type OutOfBoundsError struct {
	Label        string
	Start        uint64
	Size         uint64
	AddressWidth uint
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("region %q at %#x with size %#x exceeds the %d-bit address space",
		e.Label, e.Start, e.Size, e.AddressWidth)
}

// OverlapError reports two sibling regions with intersecting address
// ranges. A and B are ordered by start address.
type OverlapError struct {
	A, B          string // labels of the conflicting siblings
	AStart, ALast uint64 // range of A, inclusive
	BStart, BLast uint64 // range of B, inclusive
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("sibling regions %q (%#x..%#x) and %q (%#x..%#x) overlap",
		e.A, e.AStart, e.ALast, e.B, e.BStart, e.BLast)
}

// NotContainedError reports a child region whose range escapes its
// parent's range.
type NotContainedError struct {
	Child, Parent         string
	ChildStart, ChildLast uint64 // child range, inclusive
	ParStart, ParLast     uint64 // parent range, inclusive
}

func (e *NotContainedError) Error() string {
	return fmt.Sprintf("region %q (%#x..%#x) is not contained in its parent %q (%#x..%#x)",
		e.Child, e.ChildStart, e.ChildLast, e.Parent, e.ParStart, e.ParLast)
}

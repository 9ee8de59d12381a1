// Package memmap models a chip's address space as a tree of labelled
// regions and validates its physical consistency.
//
// A [Chip] owns a flat arena of [Region] nodes; parent/child links are
// arena indices, which keeps parent lookup O(1) without ownership cycles.
// Chips are built from an ordered sequence of [Descriptor] values (the
// intermediate representation produced by the manifest parser) via
// [BuildChip], and are immutable afterwards.
//
// Construction catches single-region defects (zero size, empty label).
// Whole-tree invariants - sibling overlap, parent containment, address
// space bounds - need tree context and are checked by [Validate].
//
// # Usage
//
//	chip, err := memmap.BuildChip("lpc1768", 32, descriptors)
//	if err != nil {
//	    return err
//	}
//	if err := memmap.Validate(chip); err != nil {
//	    return err
//	}
//	// chip is now safe to hand to the layout engine.
package memmap

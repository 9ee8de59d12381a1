package memmap

import (
	"cmp"
	"slices"
)

// Validate checks a chip's whole-tree invariants and returns the first
// violation found, or nil if the map is physically consistent:
//
//  1. Every region has a non-zero size (re-checked for safety; BuildChip
//     already rejects these).
//  2. Every region fits its bound: the chip's address space for top-level
//     regions, the parent's range for children.
//  3. Siblings never overlap.
//
// The traversal is deterministic - each sibling level is checked fully
// (bounds, then a single overlap scan over the siblings sorted by start
// address, declaration order breaking ties) before recursing into the
// level's children in declaration order - so the same invalid chip always
// reports the same violation.
//
// Validate is a pure function: it never mutates the chip and holds no
// state between calls, so independent chips can be validated concurrently.
func Validate(c *Chip) error {
	return validateLevel(c, c.roots, nil)
}

// validateLevel checks one sibling level bounded by parent (nil for the
// top level, where the chip's address space is the bound).
func validateLevel(c *Chip, ids []int, parent *Region) error {
	for _, id := range ids {
		r := &c.regions[id]
		if r.Size == 0 {
			return &MalformedRegionError{Label: r.Label, Index: id, Reason: "size must be greater than zero"}
		}
		if err := checkBounds(c, r, parent); err != nil {
			return err
		}
	}

	if err := checkOverlap(c, ids); err != nil {
		return err
	}

	for _, id := range ids {
		r := &c.regions[id]
		if len(r.children) == 0 {
			continue
		}
		if err := validateLevel(c, r.children, r); err != nil {
			return err
		}
	}
	return nil
}

// checkBounds verifies a region against its ceiling. Bounds are phrased
// over the inclusive last address so a region ending exactly at 2^64
// stays representable.
func checkBounds(c *Chip, r, parent *Region) error {
	// Wraparound: start + size - 1 must not overflow uint64. A wrapping
	// range violates the address space no matter where it is nested.
	if r.Size-1 > ^uint64(0)-r.Start {
		return outOfBounds(c, r)
	}
	if parent == nil {
		if r.Last() > c.MaxAddress() {
			return outOfBounds(c, r)
		}
		return nil
	}
	if !parent.Contains(r.Start, r.Last()) {
		return &NotContainedError{
			Child:      r.Label,
			Parent:     parent.Label,
			ChildStart: r.Start,
			ChildLast:  r.Last(),
			ParStart:   parent.Start,
			ParLast:    parent.Last(),
		}
	}
	return nil
}

func outOfBounds(c *Chip, r *Region) error {
	return &OutOfBoundsError{
		Label:        r.Label,
		Start:        r.Start,
		Size:         r.Size,
		AddressWidth: c.addressWidth,
	}
}

// checkOverlap runs a single linear scan over the siblings sorted by
// start address. With sorted input, any overlap shows up between adjacent
// entries: the current region starting at or before the previous one's
// last address.
func checkOverlap(c *Chip, ids []int) error {
	if len(ids) < 2 {
		return nil
	}

	sorted := slices.Clone(ids)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return cmp.Compare(c.regions[a].Start, c.regions[b].Start)
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := &c.regions[sorted[i-1]], &c.regions[sorted[i]]
		if cur.Start <= prev.Last() {
			return &OverlapError{
				A:      prev.Label,
				B:      cur.Label,
				AStart: prev.Start,
				ALast:  prev.Last(),
				BStart: cur.Start,
				BLast:  cur.Last(),
			}
		}
	}
	return nil
}

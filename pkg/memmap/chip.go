package memmap

import "math"

// Chip is the root container of a memory map: an address bus width and an
// ordered set of top-level regions. All regions live in a flat arena owned
// by the chip; tree structure is expressed through arena indices.
//
// The zero value is not usable - use [BuildChip]. Chips are immutable
// after construction and safe for concurrent read access.
type Chip struct {
	name         string
	addressWidth uint
	regions      []Region
	roots        []int
}

// Name returns the chip identifier.
func (c *Chip) Name() string { return c.name }

// AddressWidth returns the bit width of the chip's address bus.
func (c *Chip) AddressWidth() uint { return c.addressWidth }

// MaxAddress returns the highest valid address, 2^addressWidth - 1.
func (c *Chip) MaxAddress() uint64 {
	if c.addressWidth >= 64 {
		return math.MaxUint64
	}
	return 1<<c.addressWidth - 1
}

// RegionCount returns the total number of regions in the arena.
func (c *Chip) RegionCount() int { return len(c.regions) }

// Region returns the region with the given arena ID and true, or nil and
// false if the ID is out of range. The returned pointer refers into the
// chip's arena and must be treated as read-only.
func (c *Chip) Region(id int) (*Region, bool) {
	if id < 0 || id >= len(c.regions) {
		return nil, false
	}
	return &c.regions[id], true
}

// RootIDs returns the arena indices of the top-level regions in
// declaration order. The returned slice is a read-only view.
func (c *Chip) RootIDs() []int { return c.roots }

// Walk visits every region depth-first in declaration order, calling fn
// with the region and its nesting depth (0 for top-level). Traversal stops
// early if fn returns false.
func (c *Chip) Walk(fn func(r *Region, depth int) bool) {
	var visit func(ids []int, depth int) bool
	visit = func(ids []int, depth int) bool {
		for _, id := range ids {
			r := &c.regions[id]
			if !fn(r, depth) {
				return false
			}
			if !visit(r.children, depth+1) {
				return false
			}
		}
		return true
	}
	visit(c.roots, 0)
}

// Descriptors returns a descriptor sequence that rebuilds this chip via
// [BuildChip]. Useful for serializing a chip without exposing the arena.
func (c *Chip) Descriptors() []Descriptor {
	descs := make([]Descriptor, len(c.regions))
	for i, r := range c.regions {
		descs[i] = Descriptor{
			Start:  r.Start,
			Size:   r.Size,
			Label:  r.Label,
			Kind:   r.Kind,
			Parent: r.parent,
		}
	}
	return descs
}

// BuildChip constructs a not-yet-validated chip from an order-preserving
// descriptor sequence. Descriptor order is preserved as declaration order
// for both root regions and children, which later drives deterministic
// validation and layout.
//
// BuildChip enforces single-region well-formedness only: non-zero size,
// non-empty label, and parent indices referring to earlier descriptors.
// Whole-tree invariants are [Validate]'s job. Returns ErrEmptyChipName,
// ErrInvalidAddressWidth, or a *MalformedRegionError.
func BuildChip(name string, addressWidth uint, descs []Descriptor) (*Chip, error) {
	if name == "" {
		return nil, ErrEmptyChipName
	}
	if addressWidth < 1 || addressWidth > 64 {
		return nil, ErrInvalidAddressWidth
	}

	c := &Chip{
		name:         name,
		addressWidth: addressWidth,
		regions:      make([]Region, 0, len(descs)),
	}

	for i, d := range descs {
		if d.Size == 0 {
			return nil, &MalformedRegionError{Label: d.Label, Index: i, Reason: "size must be greater than zero"}
		}
		if d.Label == "" {
			return nil, &MalformedRegionError{Index: i, Reason: "label must not be empty"}
		}
		if d.Parent != NoParent && (d.Parent < 0 || d.Parent >= i) {
			return nil, &MalformedRegionError{Label: d.Label, Index: i, Reason: "parent must refer to an earlier region"}
		}

		c.regions = append(c.regions, Region{
			Start:  d.Start,
			Size:   d.Size,
			Label:  d.Label,
			Kind:   NormalizeKind(d.Kind),
			id:     i,
			parent: d.Parent,
		})

		if d.Parent == NoParent {
			c.roots = append(c.roots, i)
		} else {
			c.regions[d.Parent].children = append(c.regions[d.Parent].children, i)
		}
	}

	return c, nil
}

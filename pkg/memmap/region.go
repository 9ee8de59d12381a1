package memmap

// NoParent marks a descriptor or region without a parent (a top-level
// region of the chip).
const NoParent = -1

// Descriptor is the order-preserving intermediate representation of one
// region, as produced by a description parser. Parent refers to the index
// of an earlier descriptor in the same sequence, or NoParent for a
// top-level region.
type Descriptor struct {
	Start  uint64
	Size   uint64
	Label  string
	Kind   Kind
	Parent int
}

// Region is one contiguous interval of the address space, possibly
// containing child regions. Regions live in a Chip's arena and are
// addressed by their arena ID; they must be treated as read-only after
// BuildChip returns.
type Region struct {
	Start uint64
	Size  uint64
	Label string
	Kind  Kind

	id       int
	parent   int
	children []int
}

// ID returns the region's arena index within its chip.
func (r *Region) ID() int { return r.id }

// ParentID returns the arena index of the parent region, or NoParent.
func (r *Region) ParentID() int { return r.parent }

// ChildIDs returns the arena indices of the region's children in
// declaration order. The returned slice is a read-only view.
func (r *Region) ChildIDs() []int { return r.children }

// Last returns the region's last address, inclusive. Unlike the exclusive
// end address, Last is always representable in a uint64, even for a
// region covering the top of a 64-bit address space.
func (r *Region) Last() uint64 { return r.Start + r.Size - 1 }

// End returns the exclusive end address, Start+Size. For a region that
// ends exactly at the top of a 64-bit address space the value wraps to 0;
// use Last where that matters.
func (r *Region) End() uint64 { return r.Start + r.Size }

// Contains reports whether the interval [start, last] lies entirely
// within the region. Both bounds are inclusive.
func (r *Region) Contains(start, last uint64) bool {
	return start >= r.Start && last <= r.Last() && start <= last
}

package layout

import (
	"math"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

const eps = 1e-9

// item is one slot of a sibling level before offsets are assigned: a
// region, or (linear mode only) a blank gap between regions.
type item struct {
	id     int
	gap    bool
	weight float64
	extent float64
}

// buildItems converts one sorted sibling level into layout items. In
// linear mode the item weights are the raw address-range sizes and
// unmapped ranges become gap items, so positions stay proportional to
// addresses. The sibling span runs from the first region's start to the
// last region's end for the top level, and over the parent's full range
// for nested levels, so a child's position reflects its place inside the
// parent.
func buildItems(chip *memmap.Chip, sorted []int, mode ScaleMode, parent *memmap.Region) []item {
	if mode != ScaleLinear {
		items := make([]item, 0, len(sorted))
		for _, id := range sorted {
			r, _ := chip.Region(id)
			items = append(items, item{id: id, weight: logWeight(mode, r.Size)})
		}
		return items
	}

	first, _ := chip.Region(sorted[0])
	last, _ := chip.Region(sorted[len(sorted)-1])
	lo, hiLast := first.Start, last.Last()
	if parent != nil {
		lo, hiLast = parent.Start, parent.Last()
	}

	items := make([]item, 0, len(sorted)*2)
	cursor := lo
	wrapped := false
	for _, id := range sorted {
		r, _ := chip.Region(id)
		if !wrapped && r.Start > cursor {
			items = append(items, item{id: NoRegion, gap: true, weight: float64(r.Start - cursor)})
		}
		items = append(items, item{id: id, weight: float64(r.Size)})
		if r.Last() == math.MaxUint64 {
			wrapped = true // reached the very top of a 64-bit space
			continue
		}
		cursor = r.Last() + 1
	}
	if !wrapped && cursor <= hiLast {
		items = append(items, item{id: NoRegion, gap: true, weight: float64(hiLast-cursor) + 1})
	}
	return items
}

func logWeight(mode ScaleMode, size uint64) float64 {
	if mode == ScaleEqual {
		return 1
	}
	return math.Log2(float64(size) + 1)
}

// scaleItems assigns extents so the level sums to the available extent.
// Raw extents are proportional to the item weights; regions below the
// minimum floor are clamped up and everything else shrinks
// proportionally, preserving the mutual ratios of the unclamped items.
// Clamping one region can push another below the floor, so the pass
// repeats until it settles. Gaps are never clamped.
func scaleItems(items []item, extent float64, cfg Config, parent string) error {
	var sum float64
	for i := range items {
		sum += items[i].weight
	}
	if sum <= eps {
		// Degenerate weights; split evenly rather than divide by zero.
		for i := range items {
			items[i].extent = extent / float64(len(items))
		}
		return nil
	}

	for i := range items {
		items[i].extent = items[i].weight / sum * extent
	}
	if cfg.MinRegionExtent <= 0 {
		return nil
	}

	floor := cfg.MinRegionExtent
	clamped := make([]bool, len(items))
	for {
		var nClamped int
		var freeWeight float64
		for i := range items {
			if clamped[i] {
				nClamped++
			} else {
				freeWeight += items[i].weight
			}
		}

		avail := extent - float64(nClamped)*floor
		if avail < -eps {
			return &OverflowError{
				Parent:    parent,
				Regions:   nClamped,
				Needed:    float64(nClamped) * floor,
				Available: extent,
			}
		}

		if nClamped == len(items) {
			// Everything sits at the floor; share the level evenly so the
			// extents still sum to the parent's extent.
			for i := range items {
				items[i].extent = extent / float64(len(items))
			}
			return nil
		}

		changed := false
		for i := range items {
			if clamped[i] {
				items[i].extent = floor
				continue
			}
			scaled := avail / float64(len(items)-nClamped)
			if freeWeight > eps {
				scaled = items[i].weight / freeWeight * avail
			}
			if !items[i].gap && scaled < floor-eps {
				clamped[i] = true
				changed = true
				continue
			}
			items[i].extent = scaled
		}
		if !changed {
			return nil
		}
	}
}

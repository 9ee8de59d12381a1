package layout

import (
	"errors"
	"testing"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

func TestMinExtentClampsSmallRegion(t *testing.T) {
	// Raw shares are 937.5 and 62.5; the floor lifts the small region to
	// 100 and the large one absorbs the difference.
	chip := mustChip(t, 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0xF000, Label: "big", Parent: memmap.NoParent},
		{Start: 0xF000, Size: 0x1000, Label: "small", Parent: memmap.NoParent},
	})
	tree := mustCompute(t, chip, Config{Mode: ScaleLinear, AxisExtent: 1000, MinRegionExtent: 100})

	big := findNode(tree.Roots, "big")
	small := findNode(tree.Roots, "small")
	if !approx(small.Extent, 100) {
		t.Errorf("small extent = %g, want floor 100", small.Extent)
	}
	if !approx(big.Extent, 900) {
		t.Errorf("big extent = %g, want 900", big.Extent)
	}
	if !approx(sumExtents(tree.Roots), 1000) {
		t.Errorf("extents sum to %g, want 1000", sumExtents(tree.Roots))
	}
	// Clamping shifts the neighbor's offset too.
	if !approx(small.Offset, 900) {
		t.Errorf("small offset = %g, want 900", small.Offset)
	}
}

func TestMinExtentCascades(t *testing.T) {
	// Raw shares of 50, 100, and 150: clamping the first pushes the
	// second below the floor on the next pass, and both end at 100.
	chip := mustChip(t, 32, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x1000, Label: "a", Parent: memmap.NoParent},
		{Start: 0x1000, Size: 0x2000, Label: "b", Parent: memmap.NoParent},
		{Start: 0x3000, Size: 0x3000, Label: "c", Parent: memmap.NoParent},
	})
	tree := mustCompute(t, chip, Config{Mode: ScaleLinear, AxisExtent: 300, MinRegionExtent: 100})

	for _, label := range []string{"a", "b", "c"} {
		n := findNode(tree.Roots, label)
		if !approx(n.Extent, 100) {
			t.Errorf("%s extent = %g, want 100", label, n.Extent)
		}
	}
	if !approx(sumExtents(tree.Roots), 300) {
		t.Errorf("extents sum to %g, want 300", sumExtents(tree.Roots))
	}
}

func TestMinExtentNeverClampsGaps(t *testing.T) {
	// The gap's raw share is far below the floor; it must stay small
	// instead of being lifted.
	chip := mustChip(t, 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x7F00, Label: "rom", Parent: memmap.NoParent},
		{Start: 0x8000, Size: 0x8000, Label: "ram", Parent: memmap.NoParent},
	})
	tree := mustCompute(t, chip, Config{Mode: ScaleLinear, AxisExtent: 1000, MinRegionExtent: 50})

	var gap *Node
	for i := range tree.Roots {
		if tree.Roots[i].Gap {
			gap = &tree.Roots[i]
		}
	}
	if gap == nil {
		t.Fatal("expected a gap node between rom and ram")
	}
	if !approx(gap.Extent, 3.90625) {
		t.Errorf("gap extent = %g, want its 0x100/0x10000 share 3.90625", gap.Extent)
	}
}

func TestMinExtentOverflow(t *testing.T) {
	// Three regions at a floor of 150 need 450 but only 300 exists.
	chip := mustChip(t, 32, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x1000, Label: "a", Parent: memmap.NoParent},
		{Start: 0x1000, Size: 0x1000, Label: "b", Parent: memmap.NoParent},
		{Start: 0x2000, Size: 0x1000, Label: "c", Parent: memmap.NoParent},
	})
	_, err := Compute(chip, Config{Mode: ScaleEqual, AxisExtent: 300, MinRegionExtent: 150})

	var overflow *OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("Compute error = %v, want *OverflowError", err)
	}
	if overflow.Parent != "" {
		t.Errorf("overflow parent = %q, want top level", overflow.Parent)
	}
	if overflow.Regions != 3 || !approx(overflow.Needed, 450) || !approx(overflow.Available, 300) {
		t.Errorf("overflow = %+v, want 3 regions needing 450 of 300", overflow)
	}
}

func TestMinExtentOverflowReportsParent(t *testing.T) {
	chip := mustChip(t, 32, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x3000, Label: "apb", Parent: memmap.NoParent},
		{Start: 0x0000, Size: 0x1000, Label: "uart0", Parent: 0},
		{Start: 0x1000, Size: 0x1000, Label: "uart1", Parent: 0},
		{Start: 0x2000, Size: 0x1000, Label: "uart2", Parent: 0},
	})
	// The single root takes the whole axis of 300; its three children
	// cannot fit floors of 150 inside it.
	_, err := Compute(chip, Config{Mode: ScaleEqual, AxisExtent: 300, MinRegionExtent: 150})

	var overflow *OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("Compute error = %v, want *OverflowError", err)
	}
	if overflow.Parent != "apb" {
		t.Errorf("overflow parent = %q, want apb", overflow.Parent)
	}
}

func TestNegativeMinExtentDisablesClamping(t *testing.T) {
	chip := mustChip(t, 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0xF000, Label: "big", Parent: memmap.NoParent},
		{Start: 0xF000, Size: 0x1000, Label: "small", Parent: memmap.NoParent},
	})
	tree := mustCompute(t, chip, Config{Mode: ScaleLinear, AxisExtent: 1000, MinRegionExtent: -5})

	small := findNode(tree.Roots, "small")
	if !approx(small.Extent, 62.5) {
		t.Errorf("small extent = %g, want its unclamped share 62.5", small.Extent)
	}
}

func TestMinExtentAppliesPerLevel(t *testing.T) {
	// The child floor is checked against the parent's extent, not the
	// whole axis: stack's raw share of ram is about 40 of 400 and gets
	// lifted.
	chip := mustChip(t, 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x8000, Label: "rom", Parent: memmap.NoParent},
		{Start: 0x8000, Size: 0x8000, Label: "ram", Parent: memmap.NoParent},
		{Start: 0x8000, Size: 0x0CCC, Label: "stack", Parent: 1},
	})
	tree := mustCompute(t, chip, Config{Mode: ScaleLinear, AxisExtent: 800, MinRegionExtent: 60})

	ram := findNode(tree.Roots, "ram")
	stack := findNode(ram.Children, "stack")
	if stack == nil {
		t.Fatal("stack node missing")
	}
	if !approx(stack.Extent, 60) {
		t.Errorf("stack extent = %g, want floor 60", stack.Extent)
	}
	if !approx(sumExtents(ram.Children), ram.Extent) {
		t.Errorf("child extents sum to %g, want %g", sumExtents(ram.Children), ram.Extent)
	}
}

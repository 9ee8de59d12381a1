package memmap

import (
	"math"
	"testing"
)

func mustChip(t *testing.T, name string, width uint, descs []Descriptor) *Chip {
	t.Helper()
	chip, err := BuildChip(name, width, descs)
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}
	return chip
}

func TestValidateAcceptsConsistentMap(t *testing.T) {
	chip := mustChip(t, "mcu", 32, []Descriptor{
		{Start: 0x00000000, Size: 0x80000, Label: "flash", Kind: KindROM, Parent: NoParent},
		{Start: 0x10000000, Size: 0x8000, Label: "sram", Kind: KindRAM, Parent: NoParent},
		{Start: 0x40000000, Size: 0x80000, Label: "apb", Kind: KindPeripheral, Parent: NoParent},
		{Start: 0x4000C000, Size: 0x4000, Label: "uart0", Kind: KindPeripheral, Parent: 2},
		{Start: 0x40020000, Size: 0x4000, Label: "spi", Kind: KindPeripheral, Parent: 2},
	})
	if err := Validate(chip); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateAcceptsTouchingSiblings(t *testing.T) {
	// Adjacent regions share no address: [0, 0x3FFF] then [0x4000, 0x7FFF].
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x0000, Size: 0x4000, Label: "rom", Parent: NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: NoParent},
	})
	if err := Validate(chip); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRootOutOfBounds(t *testing.T) {
	// Region ends at 0x10000, one past the 16-bit maximum 0xFFFF.
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x8000, Size: 0x8001, Label: "rom", Parent: NoParent},
	})
	err := Validate(chip)
	oob, ok := err.(*OutOfBoundsError)
	if !ok {
		t.Fatalf("Validate = %v, want *OutOfBoundsError", err)
	}
	if oob.Label != "rom" || oob.AddressWidth != 16 {
		t.Errorf("unexpected error fields: %+v", oob)
	}
}

func TestValidateRegionFillingWholeSpace(t *testing.T) {
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0, Size: 0x10000, Label: "all", Parent: NoParent},
	})
	if err := Validate(chip); err != nil {
		t.Fatalf("a region covering the full space is valid: %v", err)
	}

	full := mustChip(t, "wide", 64, []Descriptor{
		{Start: 0, Size: math.MaxUint64, Label: "low", Parent: NoParent},
		{Start: math.MaxUint64, Size: 1, Label: "top", Parent: NoParent},
	})
	if err := Validate(full); err != nil {
		t.Fatalf("regions up to the top of a 64-bit space are valid: %v", err)
	}
}

func TestValidateWraparound(t *testing.T) {
	// start + size - 1 overflows uint64; classified out of bounds even
	// when nested under a parent.
	chip := mustChip(t, "wide", 64, []Descriptor{
		{Start: math.MaxUint64 - 1, Size: 4, Label: "wrap", Parent: NoParent},
	})
	if _, ok := Validate(chip).(*OutOfBoundsError); !ok {
		t.Fatalf("Validate = %v, want *OutOfBoundsError", Validate(chip))
	}

	nested := mustChip(t, "wide", 64, []Descriptor{
		{Start: 0xF000000000000000, Size: 0x1000000000000000, Label: "high", Parent: NoParent},
		{Start: math.MaxUint64, Size: 2, Label: "wrap", Parent: 0},
	})
	if _, ok := Validate(nested).(*OutOfBoundsError); !ok {
		t.Fatalf("Validate = %v, want *OutOfBoundsError for nested wrap", Validate(nested))
	}
}

func TestValidateSiblingOverlap(t *testing.T) {
	// The same overlap must be reported however the siblings are declared.
	forward := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x0000, Size: 0x5000, Label: "rom", Parent: NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: NoParent},
	})
	reversed := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: NoParent},
		{Start: 0x0000, Size: 0x5000, Label: "rom", Parent: NoParent},
	})

	for _, chip := range []*Chip{forward, reversed} {
		err := Validate(chip)
		overlap, ok := err.(*OverlapError)
		if !ok {
			t.Fatalf("Validate = %v, want *OverlapError", err)
		}
		if overlap.A != "rom" || overlap.B != "ram" {
			t.Errorf("overlap pair = %q/%q, want rom/ram ordered by start", overlap.A, overlap.B)
		}
	}
}

func TestValidateContainedRegion(t *testing.T) {
	// Fully enclosed siblings overlap too.
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x0000, Size: 0x8000, Label: "outer", Parent: NoParent},
		{Start: 0x1000, Size: 0x1000, Label: "inner", Parent: NoParent},
	})
	if _, ok := Validate(chip).(*OverlapError); !ok {
		t.Fatalf("Validate = %v, want *OverlapError", Validate(chip))
	}
}

func TestValidateChildNotContained(t *testing.T) {
	chip := mustChip(t, "mcu", 32, []Descriptor{
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: NoParent},
		{Start: 0x7000, Size: 0x2000, Label: "stack", Parent: 0},
	})
	err := Validate(chip)
	nc, ok := err.(*NotContainedError)
	if !ok {
		t.Fatalf("Validate = %v, want *NotContainedError", err)
	}
	if nc.Child != "stack" || nc.Parent != "ram" {
		t.Errorf("error names %q in %q, want stack in ram", nc.Child, nc.Parent)
	}
}

func TestValidateNestedOverlap(t *testing.T) {
	chip := mustChip(t, "mcu", 32, []Descriptor{
		{Start: 0x40000000, Size: 0x100000, Label: "apb", Parent: NoParent},
		{Start: 0x40000000, Size: 0x8000, Label: "uart0", Parent: 0},
		{Start: 0x40004000, Size: 0x8000, Label: "uart1", Parent: 0},
	})
	err := Validate(chip)
	overlap, ok := err.(*OverlapError)
	if !ok {
		t.Fatalf("Validate = %v, want *OverlapError", err)
	}
	if overlap.A != "uart0" || overlap.B != "uart1" {
		t.Errorf("overlap pair = %q/%q, want uart0/uart1", overlap.A, overlap.B)
	}
}

func TestValidateReportsBoundsBeforeOverlap(t *testing.T) {
	// A level is fully bounds-checked before the overlap scan runs, so the
	// out-of-bounds region wins even though the pair also overlaps.
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x8000, Size: 0x9000, Label: "big", Parent: NoParent},
		{Start: 0x8000, Size: 0x1000, Label: "small", Parent: NoParent},
	})
	if _, ok := Validate(chip).(*OutOfBoundsError); !ok {
		t.Fatalf("Validate = %v, want *OutOfBoundsError first", Validate(chip))
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	chip := mustChip(t, "mcu", 16, []Descriptor{
		{Start: 0x0000, Size: 0x5000, Label: "rom", Parent: NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: NoParent},
		{Start: 0x7000, Size: 0x2000, Label: "mmio", Parent: NoParent},
	})
	first := Validate(chip)
	for i := 0; i < 5; i++ {
		if got := Validate(chip); got.Error() != first.Error() {
			t.Fatalf("run %d reported %v, first run reported %v", i, got, first)
		}
	}
}

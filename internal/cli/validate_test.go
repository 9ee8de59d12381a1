package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

func TestCustomKinds(t *testing.T) {
	chip, err := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x100, Label: "rom", Kind: memmap.KindROM, Parent: memmap.NoParent},
		{Start: 0x0100, Size: 0x100, Label: "dma", Kind: "dma-engine", Parent: memmap.NoParent},
		{Start: 0x0200, Size: 0x100, Label: "pad", Kind: "", Parent: memmap.NoParent},
		{Start: 0x0300, Size: 0x100, Label: "crypto", Kind: "secure-enclave", Parent: memmap.NoParent},
		{Start: 0x0310, Size: 0x10, Label: "dma2", Kind: "dma-engine", Parent: 3},
	})
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}

	// A missing kind normalizes to unknown, which is built in; custom
	// kinds are reported once each in declaration order.
	got := customKinds(chip)
	want := []string{"dma-engine", "secure-enclave"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("customKinds() = %v, want %v", got, want)
	}
}

func TestCustomKindsAllCanonical(t *testing.T) {
	chip, err := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x100, Label: "rom", Kind: memmap.KindROM, Parent: memmap.NoParent},
		{Start: 0x0100, Size: 0x100, Label: "ram", Kind: memmap.KindRAM, Parent: memmap.NoParent},
	})
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}
	if got := customKinds(chip); len(got) != 0 {
		t.Errorf("customKinds() = %v, want none", got)
	}
}

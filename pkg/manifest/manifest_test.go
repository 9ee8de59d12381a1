package manifest

import (
	"errors"
	"testing"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

const sampleDoc = `
name = "lpc1768"
address-width = 32

[[region]]
label = "flash"
start = 0x00000000
size  = "512K"
kind  = "rom"

[[region]]
label = "apb0"
start = 0x40000000
size  = "512K"
kind  = "peripheral"

  [[region.region]]
  label = "uart0"
  start = 0x4000C000
  size  = 0x4000

  [[region.region]]
  label = "spi"
  start = 0x40020000
  size  = 0x4000
`

func TestParse(t *testing.T) {
	chip, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if chip.Name() != "lpc1768" || chip.AddressWidth() != 32 {
		t.Errorf("chip header = %q/%d-bit", chip.Name(), chip.AddressWidth())
	}
	if chip.RegionCount() != 4 {
		t.Fatalf("RegionCount = %d, want 4", chip.RegionCount())
	}

	flash, _ := chip.Region(0)
	if flash.Label != "flash" || flash.Start != 0 || flash.Size != 512*1024 || flash.Kind != memmap.KindROM {
		t.Errorf("flash = %+v", flash)
	}

	apb, _ := chip.Region(1)
	if apb.Kind != memmap.KindPeripheral {
		t.Errorf("apb0 kind = %q, want %q", apb.Kind, memmap.KindPeripheral)
	}
	if got := apb.ChildIDs(); len(got) != 2 {
		t.Fatalf("apb0 children = %v, want 2", got)
	}

	uart, _ := chip.Region(2)
	if uart.Label != "uart0" || uart.Start != 0x4000C000 || uart.Size != 0x4000 {
		t.Errorf("uart0 = %+v", uart)
	}
	if uart.ParentID() != 1 {
		t.Errorf("uart0 parent = %d, want 1", uart.ParentID())
	}

	if err := memmap.Validate(chip); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseDeepNesting(t *testing.T) {
	doc := `
name = "mcu"
address-width = 32

[[region]]
label = "bus"
start = 0x40000000
size  = "1M"

  [[region.region]]
  label = "block"
  start = 0x40000000
  size  = "64K"

    [[region.region.region]]
    label = "reg"
    start = 0x40000000
    size  = 0x100
`
	chip, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reg, _ := chip.Region(2)
	if reg.Label != "reg" || reg.ParentID() != 1 {
		t.Errorf("reg = %+v, want child of block", reg)
	}
	block, _ := chip.Region(1)
	if block.ParentID() != 0 {
		t.Errorf("block parent = %d, want 0", block.ParentID())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"broken toml", `name = "x`},
		{"bad start type", "name = \"x\"\naddress-width = 16\n[[region]]\nlabel = \"a\"\nstart = 1.5\nsize = 1\n"},
		{"negative width", "name = \"x\"\naddress-width = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Parse error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestParseBuildErrorsPassThrough(t *testing.T) {
	// Single-region defects come from chip construction, not decoding.
	doc := "name = \"x\"\naddress-width = 16\n[[region]]\nlabel = \"a\"\nstart = 0\nsize = 0\n"
	_, err := Parse([]byte(doc))
	var malformed *memmap.MalformedRegionError
	if !errors.As(err, &malformed) {
		t.Errorf("Parse error = %v, want *MalformedRegionError", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Error("construction errors must not be classified as decode errors")
	}
}

func TestDescriptorsFlattensParentsFirst(t *testing.T) {
	docs := []RegionDoc{
		{Label: "a", Start: 0, Size: 0x100, Regions: []RegionDoc{
			{Label: "a1", Start: 0, Size: 0x10},
			{Label: "a2", Start: 0x10, Size: 0x10, Regions: []RegionDoc{
				{Label: "a2x", Start: 0x10, Size: 0x8},
			}},
		}},
		{Label: "b", Start: 0x100, Size: 0x100},
	}

	descs := Descriptors(docs)
	wantLabels := []string{"a", "a1", "a2", "a2x", "b"}
	wantParents := []int{memmap.NoParent, 0, 0, 2, memmap.NoParent}
	if len(descs) != len(wantLabels) {
		t.Fatalf("got %d descriptors, want %d", len(descs), len(wantLabels))
	}
	for i := range descs {
		if descs[i].Label != wantLabels[i] || descs[i].Parent != wantParents[i] {
			t.Errorf("descriptor %d = %q parent %d, want %q parent %d",
				i, descs[i].Label, descs[i].Parent, wantLabels[i], wantParents[i])
		}
	}
}

package memmap_test

import (
	"fmt"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

func ExampleBuildChip() {
	// Describe a small microcontroller: ROM, RAM with a stack inside.
	chip, _ := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x4000, Label: "rom", Kind: memmap.KindROM, Parent: memmap.NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Kind: memmap.KindRAM, Parent: memmap.NoParent},
		{Start: 0x5000, Size: 0x1000, Label: "stack", Kind: memmap.KindRAM, Parent: 1},
	})

	fmt.Println("Chip:", chip.Name())
	fmt.Println("Regions:", chip.RegionCount())
	fmt.Printf("Max address: %#x\n", chip.MaxAddress())
	// Output:
	// Chip: mcu
	// Regions: 3
	// Max address: 0xffff
}

func ExampleValidate() {
	// Siblings rom and ram intersect at 0x4000..0x4fff.
	chip, _ := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x5000, Label: "rom", Parent: memmap.NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: memmap.NoParent},
	})

	err := memmap.Validate(chip)
	fmt.Println(err)
	// Output:
	// sibling regions "rom" (0x0..0x4fff) and "ram" (0x4000..0x7fff) overlap
}

func ExampleChip_Walk() {
	chip, _ := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x4000, Label: "rom", Parent: memmap.NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Parent: memmap.NoParent},
		{Start: 0x5000, Size: 0x1000, Label: "stack", Parent: 1},
	})

	chip.Walk(func(r *memmap.Region, depth int) bool {
		fmt.Printf("%*s%s\n", depth*2, "", r.Label)
		return true
	})
	// Output:
	// rom
	// ram
	//   stack
}

package render

import "github.com/matzehuels/chipmap/pkg/memmap"

// kindFills maps canonical region kinds to SVG fill colors. The RAM green
// matches the chip fill of the classic hand-drawn bank diagrams.
var kindFills = map[memmap.Kind]string{
	memmap.KindRAM:        "#47c295",
	memmap.KindROM:        "#5b8dd9",
	memmap.KindPeripheral: "#e2a14f",
	memmap.KindReserved:   "#b5b5b5",
	memmap.KindUnknown:    "#d8d8d8",
}

const gapFill = "#f2f2f2"

// fillFor returns the SVG fill for a kind, falling back to the unknown
// appearance for custom kinds.
func fillFor(k memmap.Kind) string {
	if fill, ok := kindFills[k]; ok {
		return fill
	}
	return kindFills[memmap.KindUnknown]
}

// Package banks plans the physical organization of a memory system:
// given total capacity and word size plus the capacity and word size of a
// single chip, it derives how many chip rows and columns are needed, how
// many address lines feed each chip, and how many decoder select lines
// pick a row. The resulting grid geometry feeds the same render sinks as
// the address-map layout.
package banks

import (
	"fmt"
	"math/bits"

	"fortio.org/safecast"
)

// Drawing proportions for the chip grid, in abstract drawing units.
const (
	ChipWidth   = 1.0
	ChipHeight  = 1.5
	ChipSpacing = ChipWidth*2 + 1
)

// Params are the four quantities defining a memory system. All are in
// bytes (capacities) or bytes per access (word sizes).
type Params struct {
	MemoryCapacity uint64
	MemoryWordSize uint64
	ChipCapacity   uint64
	ChipWordSize   uint64
}

// PlanError reports parameters that cannot form a chip grid.
type PlanError struct {
	Reason string
}

func (e *PlanError) Error() string { return "bank plan: " + e.Reason }

// Plan is the derived organization of the memory system.
type Plan struct {
	// Rows is the number of chip rows (memory capacity / chip capacity).
	Rows int
	// Columns is the number of chips per row (memory word / chip word).
	Columns int
	// ChipAddressLines is the number of address lines wired to every
	// chip: enough to address each word inside one chip.
	ChipAddressLines int
	// SelectLines is the number of decoder inputs needed to pick a row.
	SelectLines int
}

// New derives a plan from the given parameters. Every parameter must be
// non-zero and the memory must hold at least one chip in each dimension.
func New(p Params) (Plan, error) {
	if p.MemoryCapacity == 0 || p.MemoryWordSize == 0 || p.ChipCapacity == 0 || p.ChipWordSize == 0 {
		return Plan{}, &PlanError{Reason: "all parameters must be greater than zero"}
	}

	rows := p.MemoryCapacity / p.ChipCapacity
	cols := p.MemoryWordSize / p.ChipWordSize
	if rows == 0 || cols == 0 {
		return Plan{}, &PlanError{Reason: "memory must be at least as large as one chip"}
	}

	r, err := safecast.Conv[int](rows)
	if err != nil {
		return Plan{}, &PlanError{Reason: fmt.Sprintf("row count %d out of range", rows)}
	}
	c, err := safecast.Conv[int](cols)
	if err != nil {
		return Plan{}, &PlanError{Reason: fmt.Sprintf("column count %d out of range", cols)}
	}

	return Plan{
		Rows:             r,
		Columns:          c,
		ChipAddressLines: ceilLog2(p.ChipCapacity / p.ChipWordSize),
		SelectLines:      ceilLog2(rows),
	}, nil
}

// Chips returns the total chip count of the plan.
func (p Plan) Chips() int { return p.Rows * p.Columns }

// Cell is the drawing rectangle of one chip in the bank grid, in the
// same abstract units as the Chip* constants.
type Cell struct {
	Row, Col int
	X, Y     float64
	W, H     float64
}

// Grid returns the drawing cells for every chip, row-major from the
// bottom-left, spaced on the ChipSpacing pitch.
func (p Plan) Grid() []Cell {
	cells := make([]Cell, 0, p.Chips())
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Columns; col++ {
			cells = append(cells, Cell{
				Row: row,
				Col: col,
				X:   float64(col) * ChipSpacing,
				Y:   float64(row) * ChipSpacing,
				W:   ChipWidth,
				H:   ChipHeight,
			})
		}
	}
	return cells
}

// ceilLog2 returns the number of bits needed to index n items, 0 for
// n <= 1.
func ceilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

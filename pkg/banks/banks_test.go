package banks

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want Plan
	}{
		{
			// Classic exercise: 64K x 16 memory from 16K x 8 chips.
			name: "64Kx16 from 16Kx8",
			p:    Params{MemoryCapacity: 64 << 10, MemoryWordSize: 2, ChipCapacity: 16 << 10, ChipWordSize: 1},
			want: Plan{Rows: 4, Columns: 2, ChipAddressLines: 14, SelectLines: 2},
		},
		{
			name: "single chip",
			p:    Params{MemoryCapacity: 16 << 10, MemoryWordSize: 1, ChipCapacity: 16 << 10, ChipWordSize: 1},
			want: Plan{Rows: 1, Columns: 1, ChipAddressLines: 14, SelectLines: 0},
		},
		{
			name: "1M from 256K chips",
			p:    Params{MemoryCapacity: 1 << 20, MemoryWordSize: 4, ChipCapacity: 256 << 10, ChipWordSize: 1},
			want: Plan{Rows: 4, Columns: 4, ChipAddressLines: 18, SelectLines: 2},
		},
		{
			name: "wide words",
			p:    Params{MemoryCapacity: 128 << 10, MemoryWordSize: 8, ChipCapacity: 64 << 10, ChipWordSize: 2},
			want: Plan{Rows: 2, Columns: 4, ChipAddressLines: 15, SelectLines: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got != tt.want {
				t.Errorf("New = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero memory capacity", Params{MemoryWordSize: 1, ChipCapacity: 1024, ChipWordSize: 1}},
		{"zero chip word", Params{MemoryCapacity: 1024, MemoryWordSize: 1, ChipCapacity: 1024}},
		{"memory smaller than chip", Params{MemoryCapacity: 1024, MemoryWordSize: 1, ChipCapacity: 4096, ChipWordSize: 1}},
		{"word narrower than chip word", Params{MemoryCapacity: 4096, MemoryWordSize: 1, ChipCapacity: 1024, ChipWordSize: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.p); err == nil {
				t.Error("New should fail")
			}
		})
	}
}

func TestChips(t *testing.T) {
	p := Plan{Rows: 4, Columns: 2}
	if got := p.Chips(); got != 8 {
		t.Errorf("Chips = %d, want 8", got)
	}
}

func TestGrid(t *testing.T) {
	p := Plan{Rows: 2, Columns: 3}
	cells := p.Grid()
	if len(cells) != 6 {
		t.Fatalf("got %d cells, want 6", len(cells))
	}

	// Row-major: the fourth cell starts the second row.
	c := cells[3]
	if c.Row != 1 || c.Col != 0 {
		t.Errorf("cells[3] at row %d col %d, want 1, 0", c.Row, c.Col)
	}
	if c.X != 0 || c.Y != ChipSpacing {
		t.Errorf("cells[3] at (%g, %g), want (0, %g)", c.X, c.Y, float64(ChipSpacing))
	}

	last := cells[5]
	if last.X != 2*ChipSpacing || last.Y != ChipSpacing {
		t.Errorf("cells[5] at (%g, %g), want (%g, %g)", last.X, last.Y, 2*float64(ChipSpacing), float64(ChipSpacing))
	}
	for i, c := range cells {
		if c.W != ChipWidth || c.H != ChipHeight {
			t.Errorf("cell %d size = %gx%g, want %gx%g", i, c.W, c.H, float64(ChipWidth), float64(ChipHeight))
		}
	}
}

func TestCeilLog2(t *testing.T) {
	tests := []struct {
		n    uint64
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1 << 20, 20},
	}
	for _, tt := range tests {
		if got := ceilLog2(tt.n); got != tt.want {
			t.Errorf("ceilLog2(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

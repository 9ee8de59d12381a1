package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

func testChip(t *testing.T) *memmap.Chip {
	t.Helper()
	chip, err := memmap.BuildChip("mcu", 16, []memmap.Descriptor{
		{Start: 0x0000, Size: 0x4000, Label: "rom", Kind: memmap.KindROM, Parent: memmap.NoParent},
		{Start: 0x4000, Size: 0x4000, Label: "ram", Kind: memmap.KindRAM, Parent: memmap.NoParent},
		{Start: 0x5000, Size: 0x1000, Label: "stack", Kind: memmap.KindRAM, Parent: 1},
	})
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}
	return chip
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInspectModelRows(t *testing.T) {
	m := newInspectModel(testChip(t))
	if len(m.rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(m.rows))
	}
	if m.rows[2].region.Label != "stack" || m.rows[2].depth != 1 {
		t.Errorf("rows[2] = %q depth %d, want stack depth 1", m.rows[2].region.Label, m.rows[2].depth)
	}
}

func TestInspectModelNavigationAndCollapse(t *testing.T) {
	m := newInspectModel(testChip(t))

	next, _ := m.Update(keyMsg("j"))
	m = next.(inspectModel)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after down, want 1", m.cursor)
	}

	// Collapsing ram hides stack.
	next, _ = m.Update(keyMsg("h"))
	m = next.(inspectModel)
	if len(m.rows) != 2 {
		t.Fatalf("got %d rows after collapse, want 2", len(m.rows))
	}

	next, _ = m.Update(keyMsg("l"))
	m = next.(inspectModel)
	if len(m.rows) != 3 {
		t.Fatalf("got %d rows after expand, want 3", len(m.rows))
	}

	// Up beyond the first row stays put.
	next, _ = m.Update(keyMsg("k"))
	m = next.(inspectModel)
	next, _ = m.Update(keyMsg("k"))
	m = next.(inspectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.cursor)
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := newInspectModel(testChip(t))
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should return tea.Quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := newInspectModel(testChip(t))
	view := m.View()

	if !strings.Contains(view, "mcu — 16-bit address space") {
		t.Error("title missing")
	}
	for _, label := range []string{"rom", "ram", "stack"} {
		if !strings.Contains(view, label) {
			t.Errorf("label %q missing", label)
		}
	}
	if !strings.Contains(view, "16 KB") {
		t.Error("sizes should use binary units")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{16 << 10, "16 KB"},
		{1536, "1536 B"},
		{1 << 20, "1 MB"},
		{4 << 20, "4 MB"},
		{1 << 30, "1 GB"},
		{1 << 40, "1 TB"},
		{3 << 40, "3 TB"},
		{(1 << 20) + 1024, "1025 KB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

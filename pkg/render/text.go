package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

const (
	textLabelColumn = 24
	textAddrColumn  = 23 // "0x0000000000000000 +..." worst case stays shorter

	// minTextWidth leaves room for the label and address columns plus at
	// least a few bar cells.
	minTextWidth = textLabelColumn + textAddrColumn + 13
)

// kindStyles colors the terminal bars per region kind.
var kindStyles = map[memmap.Kind]lipgloss.Style{
	memmap.KindRAM:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	memmap.KindROM:        lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	memmap.KindPeripheral: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	memmap.KindReserved:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	memmap.KindUnknown:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
}

var gapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	chip  *memmap.Chip
	width int
	ansi  bool
}

// WithTextChip attaches the chip so each line shows its address range.
func WithTextChip(c *memmap.Chip) TextOption { return func(r *textRenderer) { r.chip = c } }

// WithTextWidth sets the total line width in terminal cells. Values below
// the minimum are raised to it.
func WithTextWidth(w int) TextOption { return func(r *textRenderer) { r.width = w } }

// WithANSI enables color output. Off by default so piped output stays
// plain.
func WithANSI() TextOption { return func(r *textRenderer) { r.ansi = true } }

// RenderText renders the geometry tree as an aligned terminal strip: one
// line per region, a bar proportional to its extent, nested regions
// indented per depth.
func RenderText(t *layout.Tree, opts ...TextOption) string {
	r := textRenderer{width: 80}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width < minTextWidth {
		r.width = minTextWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s scale)\n", t.Chip, t.Mode)
	for _, n := range t.Roots {
		r.renderLine(&b, t, n)
	}
	return b.String()
}

func (r *textRenderer) renderLine(b *strings.Builder, t *layout.Tree, n layout.Node) {
	indent := strings.Repeat("  ", n.Depth)

	label := n.Label
	if n.Gap {
		label = "(unmapped)"
	}
	label = runewidth.Truncate(indent+label, textLabelColumn, "…")
	label = runewidth.FillRight(label, textLabelColumn)

	addr := strings.Repeat(" ", textAddrColumn)
	if r.chip != nil && !n.Gap {
		if region, ok := r.chip.Region(n.RegionID); ok {
			addr = runewidth.FillRight(fmt.Sprintf("%#x +%#x", region.Start, region.Size), textAddrColumn)
		}
	}

	barWidth := r.width - textLabelColumn - textAddrColumn - 2
	if barWidth < 1 {
		barWidth = 1
	}
	cells := int(n.Extent / t.AxisExtent * float64(barWidth))
	if cells < 1 && !n.Gap {
		cells = 1
	}

	bar := strings.Repeat("█", cells)
	if n.Gap {
		bar = strings.Repeat("·", cells)
	}
	if r.ansi {
		bar = r.styleFor(n).Render(bar)
	}

	fmt.Fprintf(b, "%s %s %s\n", label, addr, bar)

	for _, child := range n.Children {
		r.renderLine(b, t, child)
	}
}

func (r *textRenderer) styleFor(n layout.Node) lipgloss.Style {
	if n.Gap {
		return gapStyle
	}
	if style, ok := kindStyles[n.Kind]; ok {
		return style
	}
	return kindStyles[memmap.KindUnknown]
}

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

const (
	svgMargin      = 24.0
	svgIndent      = 14.0
	svgAddrColumn  = 96.0
	minLabelExtent = 11.0 // below this a region is too thin for text
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	chip       *memmap.Chip
	stripWidth float64
}

// WithChip attaches the chip so start addresses can be printed alongside
// the strip. Without it, regions are drawn and labelled but unaddressed.
func WithChip(c *memmap.Chip) SVGOption { return func(r *svgRenderer) { r.chip = c } }

// WithStripWidth overrides the width of the address strip in user units.
func WithStripWidth(w float64) SVGOption { return func(r *svgRenderer) { r.stripWidth = w } }

// RenderSVG renders the geometry tree as a self-contained SVG document: a
// vertical strip running from the lowest address at the top, children
// inset one indent step per nesting depth.
func RenderSVG(t *layout.Tree, opts ...SVGOption) []byte {
	r := svgRenderer{stripWidth: 320}
	for _, opt := range opts {
		opt(&r)
	}

	width := svgMargin*2 + r.stripWidth
	if r.chip != nil {
		width += svgAddrColumn
	}
	height := svgMargin*2 + t.AxisExtent

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="12" font-weight="bold">%s</text>`+"\n",
		svgMargin, svgMargin-8, escape(t.Chip))

	for _, n := range t.Roots {
		r.renderNode(&buf, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n layout.Node) {
	inset := svgIndent * float64(n.Depth)
	x := svgMargin + inset
	w := r.stripWidth - 2*inset
	y := svgMargin + n.Offset

	fill := gapFill
	if !n.Gap {
		fill = fillFor(n.Kind)
	}
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="black" stroke-width="1"/>`+"\n",
		x, y, w, n.Extent, fill)

	if !n.Gap && n.Extent >= minLabelExtent {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="10" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x+w/2, y+n.Extent/2, escape(n.Label))
	}

	if r.chip != nil && !n.Gap {
		if region, ok := r.chip.Region(n.RegionID); ok {
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="9" fill="#555">%#x</text>`+"\n",
				svgMargin+r.stripWidth+6, y+8, region.Start)
		}
	}

	for _, child := range n.Children {
		r.renderNode(buf, child)
	}
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return svgEscaper.Replace(s) }

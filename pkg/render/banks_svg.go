package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chipmap/pkg/banks"
)

// Bank diagram proportions, in the same abstract units as the grid cells.
const (
	bankScale = 40.0 // SVG user units per drawing unit

	marInset = 0.15 // gap between a chip edge and its MAR connectors
	marWidth = 0.2  // width of the MAR box

	busAddrX   = -1.2 // vertical address bus
	busRWX     = -0.55
	decoderX   = -2.6 // decoder output edge
	decoderW   = 0.3
	decoderH   = 2.0
	selectRise = 0.5 // select rails run this far above each chip row

	chipFill = "#47c295"
	marFill  = "#8d5524"
)

// bankCanvas emits SVG primitives in drawing coordinates with y growing
// upward, flipping to SVG space on output.
type bankCanvas struct {
	buf        bytes.Buffer
	minX, maxY float64
	margin     float64
}

func (c *bankCanvas) sx(x float64) float64 { return c.margin + (x-c.minX)*bankScale }
func (c *bankCanvas) sy(y float64) float64 { return c.margin + (c.maxY-y)*bankScale }

func (c *bankCanvas) line(x1, y1, x2, y2 float64, stroke string) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
		c.sx(x1), c.sy(y1), c.sx(x2), c.sy(y2), stroke)
}

// rect takes the lower-left corner in drawing units.
func (c *bankCanvas) rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="black" stroke-width="2"/>`+"\n",
		c.sx(x), c.sy(y+h), w*bankScale, h*bankScale, fill)
}

func (c *bankCanvas) dot(x, y float64) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="3" fill="black"/>`+"\n", c.sx(x), c.sy(y))
}

func (c *bankCanvas) text(x, y float64, anchor, s string) {
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="10" text-anchor="%s">%s</text>`+"\n",
		c.sx(x), c.sy(y), anchor, s)
}

// RenderBankSVG draws a bank plan as the classic memory-organization
// diagram: the chip grid with CS pads and MAR boxes, the row-select
// decoder, and the address, data, and R/W lines tying them together.
func RenderBankSVG(p banks.Plan) []byte {
	rows, cols := float64(p.Rows), float64(p.Columns)
	gridW := (cols-1)*banks.ChipSpacing + banks.ChipWidth
	gridH := (rows-1)*banks.ChipSpacing + banks.ChipHeight
	busDataX := gridW + 0.8

	c := &bankCanvas{
		minX:   decoderX - 1.0,
		maxY:   gridH + selectRise + 0.6,
		margin: 1.2 * bankScale,
	}
	width := c.margin*2 + (busDataX+0.4-c.minX)*bankScale
	height := c.margin*2 + (c.maxY+1.0)*bankScale

	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&c.buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="13">%dx%d chips, %d address lines, %d select lines</text>`+"\n",
		c.margin, c.margin-14, p.Rows, p.Columns, p.ChipAddressLines, p.SelectLines)

	for _, cell := range p.Grid() {
		c.rect(cell.X, cell.Y, cell.W, cell.H, chipFill)
		c.text(cell.X+cell.W/2, cell.Y+cell.H-0.35, "middle", "CS")
		drawMAR(c, cell)
	}

	drawAddressBus(c, p)
	if p.Rows > 1 {
		drawDecoder(c, p)
	}
	drawDataBus(c, p, busDataX)
	drawRW(c, p)

	c.buf.WriteString("</svg>\n")
	return c.buf.Bytes()
}

// drawMAR draws the per-chip addressing unit: the MAR box beside the chip
// and its connectors into the chip edge.
func drawMAR(c *bankCanvas, cell banks.Cell) {
	left := cell.X - marInset
	bot := cell.Y + marInset
	top := cell.Y + cell.H - marInset
	c.line(left, bot, cell.X, cell.Y, "black")
	c.line(left, top, cell.X, cell.Y+cell.H, "black")
	c.line(left, bot, left, top, "black")
	c.rect(left-marWidth, bot, marWidth, top-bot, marFill)
}

// drawAddressBus runs the address lines from the bus into every MAR.
func drawAddressBus(c *bankCanvas, p banks.Plan) {
	rowMid := func(row int) float64 { return float64(row)*banks.ChipSpacing + banks.ChipHeight/2 }

	if p.Rows > 1 {
		c.line(busAddrX, rowMid(0), busAddrX, rowMid(p.Rows-1), "black")
	}
	for row := 0; row < p.Rows; row++ {
		c.line(busAddrX, rowMid(row), -marInset-marWidth, rowMid(row), "black")
		if p.Columns == 1 {
			continue
		}
		// Columns past the first feed from a sub-bus below the row.
		subY := rowMid(row) - banks.ChipHeight/2 - 0.5
		tap := -marInset - marWidth - 0.35
		c.line(tap, subY, float64(p.Columns-1)*banks.ChipSpacing+tap, subY, "black")
		for col := 0; col < p.Columns; col++ {
			x := float64(col)*banks.ChipSpacing + tap
			c.line(x, subY, x, rowMid(row), "black")
			c.line(x, rowMid(row), float64(col)*banks.ChipSpacing-marInset-marWidth, rowMid(row), "black")
		}
	}
}

// drawDecoder draws the row-select decoder bracket and one select rail per
// chip row, dotted at every chip it enables.
func drawDecoder(c *bankCanvas, p banks.Plan) {
	top := float64(p.Rows) * banks.ChipSpacing / 2
	bot := top - decoderH

	c.line(decoderX, bot, decoderX, top, "black")
	c.line(decoderX-decoderW, bot+0.25, decoderX-decoderW, top-0.25, "black")
	c.line(decoderX-decoderW, bot+0.25, decoderX, bot, "black")
	c.line(decoderX-decoderW, top-0.25, decoderX, top, "black")
	c.line(decoderX-decoderW-0.5, (bot+top)/2, decoderX-decoderW, (bot+top)/2, "black")

	pitch := decoderH / float64(p.Rows+1)
	for row := 0; row < p.Rows; row++ {
		outY := bot + pitch*float64(row+1)
		railY := float64(row)*banks.ChipSpacing + banks.ChipHeight + selectRise
		riserX := decoderX + 0.15 + 0.12*float64(row)

		c.dot(decoderX, outY)
		c.line(decoderX, outY, riserX, outY, "black")
		c.line(riserX, outY, riserX, railY, "black")
		c.line(riserX, railY, float64(p.Columns-1)*banks.ChipSpacing+0.6, railY, "black")
		for col := 0; col < p.Columns; col++ {
			stubX := float64(col)*banks.ChipSpacing + 0.6
			c.line(stubX, railY, stubX, float64(row)*banks.ChipSpacing+banks.ChipHeight, "black")
			c.dot(stubX, railY)
		}
	}
}

// drawDataBus runs one data line per row into the vertical bus on the
// right edge.
func drawDataBus(c *bankCanvas, p banks.Plan, busX float64) {
	topY := float64(p.Rows-1)*banks.ChipSpacing + banks.ChipHeight
	c.line(busX, -0.9, busX, topY, "black")
	for row := 0; row < p.Rows; row++ {
		lineY := float64(row)*banks.ChipSpacing - 0.3
		c.line(0.25, lineY, busX, lineY, "black")
		for col := 0; col < p.Columns; col++ {
			x := float64(col)*banks.ChipSpacing + 0.25
			c.line(x, lineY, x, float64(row)*banks.ChipSpacing, "black")
		}
	}
}

// drawRW draws the read/write control line shared by every chip.
func drawRW(c *bankCanvas, p banks.Plan) {
	topY := float64(p.Rows-1)*banks.ChipSpacing + banks.ChipHeight
	c.line(busRWX, -0.6, busRWX, topY, "red")
	c.text(busRWX-0.1, topY+0.15, "end", "R/W")
	for row := 0; row < p.Rows; row++ {
		lineY := float64(row)*banks.ChipSpacing - 0.55
		c.line(busRWX, lineY, float64(p.Columns-1)*banks.ChipSpacing+0.85, lineY, "red")
		for col := 0; col < p.Columns; col++ {
			x := float64(col)*banks.ChipSpacing + 0.85
			c.line(x, lineY, x, float64(row)*banks.ChipSpacing, "red")
		}
	}
}

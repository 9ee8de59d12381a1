package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	chip *memmap.Chip
}

// WithJSONChip attaches the chip so every block carries its address range
// alongside the geometry. Without it, blocks list geometry only.
func WithJSONChip(c *memmap.Chip) JSONOption { return func(r *jsonRenderer) { r.chip = c } }

type jsonOutput struct {
	Chip         string      `json:"chip"`
	AddressWidth uint        `json:"address_width,omitempty"`
	Mode         string      `json:"mode"`
	AxisExtent   float64     `json:"axis_extent"`
	Regions      []jsonBlock `json:"regions"`
}

type jsonBlock struct {
	Label    string      `json:"label,omitempty"`
	Kind     memmap.Kind `json:"kind,omitempty"`
	Start    string      `json:"start,omitempty"` // hex, e.g. "0x8000"
	Size     string      `json:"size,omitempty"`  // hex
	Offset   float64     `json:"offset"`
	Extent   float64     `json:"extent"`
	Depth    int         `json:"depth"`
	Gap      bool        `json:"gap,omitempty"`
	Children []jsonBlock `json:"children,omitempty"`
}

// RenderJSON exports the geometry tree as a pretty-printed JSON document,
// the primary interchange format for downstream tooling. The output is
// stable for a given tree, so it doubles as a cacheable artifact.
func RenderJSON(t *layout.Tree, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Chip:       t.Chip,
		Mode:       string(t.Mode),
		AxisExtent: t.AxisExtent,
		Regions:    r.blocks(t.Roots),
	}
	if r.chip != nil {
		out.AddressWidth = r.chip.AddressWidth()
	}

	return json.MarshalIndent(out, "", "  ")
}

func (r *jsonRenderer) blocks(nodes []layout.Node) []jsonBlock {
	if len(nodes) == 0 {
		return nil
	}
	blocks := make([]jsonBlock, 0, len(nodes))
	for _, n := range nodes {
		b := jsonBlock{
			Label:    n.Label,
			Kind:     n.Kind,
			Offset:   n.Offset,
			Extent:   n.Extent,
			Depth:    n.Depth,
			Gap:      n.Gap,
			Children: r.blocks(n.Children),
		}
		if r.chip != nil && !n.Gap {
			if region, ok := r.chip.Region(n.RegionID); ok {
				b.Start = fmt.Sprintf("%#x", region.Start)
				b.Size = fmt.Sprintf("%#x", region.Size)
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

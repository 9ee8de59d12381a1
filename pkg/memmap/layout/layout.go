package layout

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

// ScaleMode selects the policy mapping address-range size to visual
// extent.
type ScaleMode string

const (
	// ScaleLinear makes extents proportional to address ranges and keeps
	// unmapped gaps between siblings as blank filler nodes.
	ScaleLinear ScaleMode = "linear"
	// ScaleLog weighs extents by log2(size+1), renormalized per sibling
	// level. Gaps are omitted since positions are no longer
	// address-proportional.
	ScaleLog ScaleMode = "log"
	// ScaleEqual gives every sibling the same extent regardless of size.
	ScaleEqual ScaleMode = "equal"
)

// Validate reports whether m is a known scale mode.
func (m ScaleMode) Validate() error {
	switch m {
	case ScaleLinear, ScaleLog, ScaleEqual:
		return nil
	}
	return fmt.Errorf("%w: %q (must be linear, log, or equal)", ErrUnknownScaleMode, string(m))
}

var (
	// ErrUnknownScaleMode is returned by [Compute] for an unrecognized
	// scale mode.
	ErrUnknownScaleMode = errors.New("unknown scale mode")

	// ErrInvalidAxisExtent is returned by [Compute] when the configured
	// axis extent is not strictly positive.
	ErrInvalidAxisExtent = errors.New("axis extent must be greater than zero")
)

// OverflowError is returned when the minimum-extent floors of a sibling
// level cannot fit inside the available extent. Rather than emit a
// distorted or negative layout, the engine fails and reports the level.
type OverflowError struct {
	Parent    string  // label of the enclosing region, empty for the top level
	Regions   int     // number of floor-clamped regions at the level
	Needed    float64 // Regions * MinRegionExtent
	Available float64 // the level's total extent
}

func (e *OverflowError) Error() string {
	where := "top level"
	if e.Parent != "" {
		where = fmt.Sprintf("region %q", e.Parent)
	}
	return fmt.Sprintf("layout overflow in %s: %d regions need %.6g at minimum but only %.6g is available",
		where, e.Regions, e.Needed, e.Available)
}

// Config controls a layout pass. The zero value is not usable: AxisExtent
// must be positive and Mode one of the scale modes.
type Config struct {
	// Mode is the scale policy for the whole pass; children inherit it.
	Mode ScaleMode
	// AxisExtent is the total drawing length available to the chip's
	// top-level regions, in whatever unit the renderer works in.
	AxisExtent float64
	// MinRegionExtent is the floor below which a region is clamped up so
	// it stays legible even when its address-space share rounds to
	// nothing. Zero disables clamping. Gaps are never clamped.
	MinRegionExtent float64
}

// Node is one element of the geometry tree. Regular nodes mirror a region
// of the chip; gap nodes (Gap true, RegionID NoRegion) are blank filler
// emitted in linear mode for unmapped address ranges.
type Node struct {
	RegionID int         `json:"region_id" msgpack:"region_id"`
	Label    string      `json:"label,omitempty" msgpack:"label"`
	Kind     memmap.Kind `json:"kind,omitempty" msgpack:"kind"`
	Offset   float64     `json:"offset" msgpack:"offset"`
	Extent   float64     `json:"extent" msgpack:"extent"`
	Depth    int         `json:"depth" msgpack:"depth"`
	Gap      bool        `json:"gap,omitempty" msgpack:"gap"`
	Children []Node      `json:"children,omitempty" msgpack:"children"`
}

// NoRegion is the RegionID of gap nodes, which represent no region.
const NoRegion = -1

// Tree is the render-ready output of a layout pass. It mirrors the shape
// of the chip's region tree and is independent of it: the validated chip
// stays reusable for further passes at other sizes or modes.
type Tree struct {
	Chip       string    `json:"chip" msgpack:"chip"`
	Mode       ScaleMode `json:"mode" msgpack:"mode"`
	AxisExtent float64   `json:"axis_extent" msgpack:"axis_extent"`
	Roots      []Node    `json:"roots" msgpack:"roots"`
}

// Compute lays out a chip along a single axis and returns the geometry
// tree.
//
// Precondition: the chip has passed [memmap.Validate]. Compute does not
// re-validate - layout of an inconsistent map would double the work for
// every render pass - and its output is meaningless for invalid chips.
//
// A chip with no regions yields an empty tree and no error; an empty map
// is a valid, if uninteresting, input. Compute is deterministic: the same
// chip and config always produce an identical tree.
func Compute(chip *memmap.Chip, cfg Config) (*Tree, error) {
	if err := cfg.Mode.Validate(); err != nil {
		return nil, err
	}
	if cfg.AxisExtent <= 0 {
		return nil, ErrInvalidAxisExtent
	}
	if cfg.MinRegionExtent < 0 {
		cfg.MinRegionExtent = 0
	}

	t := &Tree{
		Chip:       chip.Name(),
		Mode:       cfg.Mode,
		AxisExtent: cfg.AxisExtent,
	}

	roots, err := layoutLevel(chip, chip.RootIDs(), levelFrame{
		offset: 0,
		extent: cfg.AxisExtent,
		depth:  0,
	}, cfg, nil)
	if err != nil {
		return nil, err
	}
	t.Roots = roots
	return t, nil
}

// levelFrame carries the sub-axis one sibling level is laid out into.
type levelFrame struct {
	offset float64
	extent float64
	depth  int
}

// layoutLevel lays out one sibling level inside its frame and recurses
// into children. parent is nil for the top level.
func layoutLevel(chip *memmap.Chip, ids []int, frame levelFrame, cfg Config, parent *memmap.Region) ([]Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(ids)
	slices.SortStableFunc(sorted, func(a, b int) int {
		ra, _ := chip.Region(a)
		rb, _ := chip.Region(b)
		return cmp.Compare(ra.Start, rb.Start)
	})

	items := buildItems(chip, sorted, cfg.Mode, parent)
	if err := scaleItems(items, frame.extent, cfg, parentLabel(parent)); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(items))
	cursor := frame.offset
	for _, it := range items {
		n := Node{
			RegionID: it.id,
			Offset:   cursor,
			Extent:   it.extent,
			Depth:    frame.depth,
			Gap:      it.gap,
		}
		if !it.gap {
			r, _ := chip.Region(it.id)
			n.Label = r.Label
			n.Kind = r.Kind
			children, err := layoutLevel(chip, r.ChildIDs(), levelFrame{
				offset: cursor,
				extent: it.extent,
				depth:  frame.depth + 1,
			}, cfg, r)
			if err != nil {
				return nil, err
			}
			n.Children = children
		}
		cursor += it.extent
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parentLabel(r *memmap.Region) string {
	if r == nil {
		return ""
	}
	return r.Label
}

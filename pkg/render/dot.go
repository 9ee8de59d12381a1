package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

// ToDOT converts a chip's region tree to Graphviz DOT format as a
// containment digraph: the chip at the top, an edge from every region to
// each of its children. The resulting DOT can be rendered with
// [GraphvizSVG] or [GraphvizPNG].
func ToDOT(chip *memmap.Chip) string {
	var buf bytes.Buffer
	buf.WriteString("digraph chip {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	chipNode := fmt.Sprintf("chip:%s", chip.Name())
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=white, fontsize=14];\n",
		chipNode, fmt.Sprintf("%s\n%d-bit", chip.Name(), chip.AddressWidth()))

	chip.Walk(func(r *memmap.Region, depth int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", dotID(chip, r), strings.Join(dotAttrs(r), ", "))
		return true
	})

	buf.WriteString("\n")
	for _, id := range chip.RootIDs() {
		r, _ := chip.Region(id)
		fmt.Fprintf(&buf, "  %q -> %q;\n", chipNode, dotID(chip, r))
	}
	chip.Walk(func(r *memmap.Region, depth int) bool {
		for _, childID := range r.ChildIDs() {
			child, _ := chip.Region(childID)
			fmt.Fprintf(&buf, "  %q -> %q;\n", dotID(chip, r), dotID(chip, child))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

// dotID builds a unique node identifier. Labels alone are not unique, so
// the arena ID is folded in.
func dotID(chip *memmap.Chip, r *memmap.Region) string {
	return fmt.Sprintf("r%d:%s", r.ID(), r.Label)
}

func dotAttrs(r *memmap.Region) []string {
	label := fmt.Sprintf("%s\n%#x..%#x\n%s", r.Label, r.Start, r.Last(), r.Kind)
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fillFor(r.Kind)),
	}
}

// GraphvizSVG renders a DOT graph to SVG using the embedded Graphviz
// engine.
func GraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.SVG)
}

// GraphvizPNG renders a DOT graph to PNG using the embedded Graphviz
// engine.
func GraphvizPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

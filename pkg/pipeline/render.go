package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
	"github.com/matzehuels/chipmap/pkg/render"
)

// RenderFromTree renders every requested format from an existing geometry
// tree. Formats render concurrently; the first failure cancels the rest.
func RenderFromTree(ctx context.Context, t *layout.Tree, chip *memmap.Chip, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, format, t, chip, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, t *layout.Tree, chip *memmap.Chip, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(t, render.WithChip(chip), render.WithStripWidth(opts.StripWidth)), nil
	case FormatJSON:
		return render.RenderJSON(t, render.WithJSONChip(chip))
	case FormatText:
		textOpts := []render.TextOption{render.WithTextChip(chip), render.WithTextWidth(opts.TextWidth)}
		if opts.TextANSI {
			textOpts = append(textOpts, render.WithANSI())
		}
		return []byte(render.RenderText(t, textOpts...)), nil
	case FormatDOT:
		return []byte(render.ToDOT(chip)), nil
	case FormatPNG:
		return render.GraphvizPNG(ctx, render.ToDOT(chip))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

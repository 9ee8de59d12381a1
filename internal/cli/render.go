package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/chipmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: svg, png, json, dot, text
	mode       string   // scale mode: linear, log, equal
	axisExtent float64  // axis length in abstract units
	minExtent  float64  // floor for region extents, 0 disables
	stripWidth float64  // SVG strip width in pixels
	textWidth  int      // terminal line width for the text format
	noCache    bool     // disable the pipeline cache
	refresh    bool     // bypass cached results and recompute
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		mode:       pipeline.DefaultMode,
		axisExtent: pipeline.DefaultAxisExtent,
		stripWidth: pipeline.DefaultStripWidth,
	}

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a memory map to SVG(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, text (comma-separated)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "scale mode: linear (default), log, equal")
	cmd.Flags().Float64Var(&opts.axisExtent, "axis", opts.axisExtent, "axis length in abstract units")
	cmd.Flags().Float64Var(&opts.minExtent, "min-extent", 0, "minimum region extent on the axis (0 disables)")
	cmd.Flags().Float64Var(&opts.stripWidth, "strip-width", opts.stripWidth, "SVG strip width in pixels")
	cmd.Flags().IntVar(&opts.textWidth, "text-width", 0, "line width for the text format (0 = detect terminal)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached results exist")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, manifestPath string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.textWidth == 0 {
		opts.textWidth = terminalWidth()
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		ManifestPath:    manifestPath,
		Refresh:         opts.refresh,
		Mode:            opts.mode,
		AxisExtent:      opts.axisExtent,
		MinRegionExtent: opts.minExtent,
		Formats:         opts.formats,
		StripWidth:      opts.stripWidth,
		TextWidth:       opts.textWidth,
		TextANSI:        textToStdout(opts) && term.IsTerminal(int(os.Stdout.Fd())),
		Logger:          c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", result.Chip.Name()))

	printSuccess("Rendered %s", StyleHighlight.Render(result.Chip.Name()))
	printStats(result.Chip.RegionCount(), result.Chip.AddressWidth(), result.CacheInfo.RenderHit)

	return writeArtifacts(result, manifestPath, opts)
}

// textToStdout reports whether the run produces a lone text artifact with
// no explicit output, which goes to stdout instead of a file and may be
// colored when stdout is a terminal.
func textToStdout(opts *renderOpts) bool {
	return len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatText && opts.output == ""
}

// writeArtifacts writes each rendered format to disk, except a lone text
// artifact with no explicit output, which goes to stdout.
func writeArtifacts(result *pipeline.Result, manifestPath string, opts *renderOpts) error {
	if textToStdout(opts) {
		fmt.Print(string(result.Artifacts[pipeline.FormatText]))
		return nil
	}

	base := basePath(opts.output, manifestPath)
	for _, format := range opts.formats {
		path := artifactPath(base, opts.output, format, len(opts.formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// terminalWidth returns the width of stdout when it is a terminal,
// otherwise the pipeline default.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return pipeline.DefaultTextWidth
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the input; if output
// carries a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] || ext == "txt" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

// artifactPath builds the output path for one format. A single format with
// an explicit output keeps that path verbatim.
func artifactPath(base, output, format string, formatCount int) string {
	if formatCount == 1 && output != "" {
		return output
	}
	ext := format
	if format == pipeline.FormatText {
		ext = "txt"
	}
	return base + "." + ext
}

// Package pkg provides the core libraries for chipmap memory map visualization.
//
// # Overview
//
// Chipmap models chip memory maps as trees of address-space regions,
// validates them, and lays them out on a scaled 1-D axis so both small
// peripherals and large RAM banks stay readable. The pkg directory is
// organized into these areas:
//
//  1. [memmap] - Domain model (chips, regions, invariant validation)
//  2. [memmap/layout] - Scale-aware geometry computation
//  3. [manifest] / [io] - TOML and JSON chip descriptions
//  4. [render] - Output sinks (SVG, PNG, JSON, DOT, terminal text)
//  5. [pipeline] - Orchestration (build → layout → render) with caching
//  6. [banks] - Memory bank chip-grid planning
//
// # Architecture
//
// The typical data flow through chipmap:
//
//	TOML/JSON description
//	         ↓
//	    [manifest] or [io] (decode and construct)
//	         ↓
//	    [memmap] (validate bounds, overlap, containment)
//	         ↓
//	    [memmap/layout] (scale regions onto the axis)
//	         ↓
//	    [render] (SVG/PNG/JSON/DOT/text output)
//
// # Quick Start
//
// Parse a description and render an SVG strip:
//
//	import (
//	    "github.com/matzehuels/chipmap/pkg/manifest"
//	    "github.com/matzehuels/chipmap/pkg/memmap"
//	    "github.com/matzehuels/chipmap/pkg/memmap/layout"
//	    "github.com/matzehuels/chipmap/pkg/render"
//	)
//
//	// 1. Decode the description
//	chip, _ := manifest.Load("board.toml")
//
//	// 2. Validate the map
//	if err := memmap.Validate(chip); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 3. Compute geometry
//	tree, _ := layout.Compute(chip, layout.Config{
//	    Mode:       layout.ScaleLog,
//	    AxisExtent: 1000,
//	})
//
//	// 4. Render to SVG
//	svg := render.RenderSVG(tree, render.WithChip(chip))
//
// # Supporting Packages
//
// [pipeline] - Complete visualization pipeline used by the CLI. Caches
// built chips, geometry trees, and rendered artifacts by content hash.
//
// [cache] - Pluggable byte caches (file-based, null) with scoped keyers.
//
// [observability] - Optional hooks for pipeline and cache instrumentation.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/memmap/...   # Specific package
//	go test -run Example       # Examples only
//
// [memmap]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/memmap
// [memmap/layout]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/memmap/layout
// [manifest]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/manifest
// [io]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/pipeline
// [banks]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/banks
// [cache]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/chipmap/pkg/buildinfo
package pkg

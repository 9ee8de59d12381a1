// Package io provides JSON import and export for chip memory maps.
//
// # Overview
//
// This package enables serialization of memory maps to and from a simple
// JSON format. The format is designed for:
//
//   - Integration with external tools that produce or consume memory maps
//   - Generating chip descriptions programmatically, where TOML is awkward
//   - Round-trip preservation: import, render, export, and re-import identically
//
// # JSON Format
//
// The format names the chip, its address bus width, and a nested region
// tree; nesting in the document mirrors nesting in the address space:
//
//	{
//	  "name": "mcu",
//	  "address_width": 32,
//	  "regions": [
//	    {"label": "flash", "start": "0x0", "size": "0x80000", "kind": "rom"},
//	    {
//	      "label": "sram", "start": "0x10000000", "size": "0x8000", "kind": "ram",
//	      "regions": [
//	        {"label": "stack", "start": "0x10006000", "size": "0x2000"}
//	      ]
//	    }
//	  ]
//	}
//
// Addresses and sizes are hex strings so 64-bit values survive JSON's
// number representation.
//
// # Region Fields
//
// Required:
//   - label: display name, unique among siblings by convention
//   - start: first address of the region
//   - size: region length in bytes, never zero
//
// Optional:
//   - kind: "ram", "rom", "peripheral", "reserved" (defaults to "unknown")
//   - regions: child regions nested inside this one
//
// # Import
//
// Use [ImportJSON] to read a chip from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	chip, err := io.ImportJSON("board.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions check single-region well-formedness during construction.
// Whole-tree invariants (overlap, containment, bounds) are checked
// separately with [memmap.Validate], exactly as for TOML descriptions.
//
// # Export
//
// Use [ExportJSON] to write a chip to a file, or [WriteJSON] to write to
// any io.Writer:
//
//	err := io.ExportJSON(chip, "output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export preserves declaration order and nesting, enabling full
// round-trip fidelity.
//
// # Layout Export
//
// This package exports the logical map only (regions and their address
// ranges). For computed geometry, use the JSON sink in [render], which
// exports the scaled offsets and extents alongside the addresses.
//
// [render]: github.com/matzehuels/chipmap/pkg/render
// [memmap.Validate]: github.com/matzehuels/chipmap/pkg/memmap.Validate
package io

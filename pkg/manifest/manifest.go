// Package manifest reads declarative chip descriptions from TOML and
// turns them into not-yet-validated [memmap.Chip] values.
//
// A description names the chip, its address bus width, and a tree of
// regions; nesting in the document mirrors nesting in the address space:
//
//	name = "lpc1768"
//	address-width = 32
//
//	[[region]]
//	label = "flash"
//	start = 0x00000000
//	size  = "512K"
//	kind  = "rom"
//
//	[[region]]
//	label = "apb0"
//	start = 0x40000000
//	size  = "512K"
//	kind  = "peripheral"
//
//	  [[region.region]]
//	  label = "uart0"
//	  start = 0x4000C000
//	  size  = 0x4000
//
// Addresses accept TOML integers (hex literals included) or strings;
// sizes additionally accept unit suffixes ("16K", "4M", "1G").
package manifest

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

// ErrDecode wraps every failure to decode a description document, so
// callers can tell a broken file from a semantically invalid map.
var ErrDecode = errors.New("malformed description")

// Document is the top-level shape of a chip description file.
type Document struct {
	Name         string      `toml:"name"`
	AddressWidth int64       `toml:"address-width"`
	Regions      []RegionDoc `toml:"region"`
}

// RegionDoc describes one region. Child regions nest as [[region.region]]
// tables, to arbitrary depth.
type RegionDoc struct {
	Label   string      `toml:"label"`
	Start   Address     `toml:"start"`
	Size    Size        `toml:"size"`
	Kind    string      `toml:"kind"`
	Regions []RegionDoc `toml:"region"`
}

// Parse decodes a TOML chip description and builds the chip. The result
// has not been validated; callers run [memmap.Validate] before layout.
func Parse(data []byte) (*memmap.Chip, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	width, err := safecast.Conv[uint](doc.AddressWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: address-width %d: %v", ErrDecode, doc.AddressWidth, err)
	}

	return memmap.BuildChip(doc.Name, width, Descriptors(doc.Regions))
}

// Load reads and parses a chip description file.
func Load(path string) (*memmap.Chip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	chip, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chip, nil
}

// Descriptors flattens a region document tree into the order-preserving
// descriptor sequence consumed by [memmap.BuildChip]. Parents always
// precede their children, document order is kept throughout.
func Descriptors(regions []RegionDoc) []memmap.Descriptor {
	var out []memmap.Descriptor
	var walk func(docs []RegionDoc, parent int)
	walk = func(docs []RegionDoc, parent int) {
		for _, d := range docs {
			out = append(out, memmap.Descriptor{
				Start:  uint64(d.Start),
				Size:   uint64(d.Size),
				Label:  d.Label,
				Kind:   memmap.Kind(d.Kind),
				Parent: parent,
			})
			walk(d.Regions, len(out)-1)
		}
	}
	walk(regions, memmap.NoParent)
	return out
}

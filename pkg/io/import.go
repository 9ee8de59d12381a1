package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chipmap/pkg/manifest"
	"github.com/matzehuels/chipmap/pkg/memmap"
)

// ReadJSON decodes a JSON chip description from r.
//
// Addresses and sizes accept the same spellings as TOML descriptions:
// hex or decimal strings, with unit suffixes ("16K", "4M") on sizes.
//
// ReadJSON returns an error wrapping [manifest.ErrDecode] if the JSON is
// malformed or a number cannot be parsed, and the usual construction
// errors for empty labels, zero sizes, or a bad address width. The
// returned chip has not been validated; run [memmap.Validate] before
// layout.
func ReadJSON(r io.Reader) (*memmap.Chip, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", manifest.ErrDecode, err)
	}

	descs, err := importRegions(doc.Regions, memmap.NoParent, nil)
	if err != nil {
		return nil, err
	}
	return memmap.BuildChip(doc.Name, doc.AddressWidth, descs)
}

func importRegions(docs []regionDoc, parent int, out []memmap.Descriptor) ([]memmap.Descriptor, error) {
	for _, d := range docs {
		var (
			start manifest.Address
			size  manifest.Size
		)
		if err := start.UnmarshalTOML(d.Start); err != nil {
			return nil, fmt.Errorf("%w: region %q start: %v", manifest.ErrDecode, d.Label, err)
		}
		if err := size.UnmarshalTOML(d.Size); err != nil {
			return nil, fmt.Errorf("%w: region %q size: %v", manifest.ErrDecode, d.Label, err)
		}

		out = append(out, memmap.Descriptor{
			Start:  uint64(start),
			Size:   uint64(size),
			Label:  d.Label,
			Kind:   memmap.Kind(d.Kind),
			Parent: parent,
		})

		var err error
		out, err = importRegions(d.Regions, len(out)-1, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ImportJSON reads a JSON file at path and returns the decoded chip.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*memmap.Chip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	chip, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chip, nil
}

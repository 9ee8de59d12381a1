package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

// document is the JSON shape of a chip description.
type document struct {
	Name         string      `json:"name"`
	AddressWidth uint        `json:"address_width"`
	Regions      []regionDoc `json:"regions,omitempty"`
}

// regionDoc describes one region; children nest inside their parent.
type regionDoc struct {
	Label   string      `json:"label"`
	Start   string      `json:"start"`
	Size    string      `json:"size"`
	Kind    string      `json:"kind,omitempty"`
	Regions []regionDoc `json:"regions,omitempty"`
}

// WriteJSON encodes a chip as JSON and writes it to w. Declaration order
// and nesting are preserved, so the output can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(c *memmap.Chip, w io.Writer) error {
	out := document{
		Name:         c.Name(),
		AddressWidth: c.AddressWidth(),
		Regions:      exportRegions(c, c.RootIDs()),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportRegions(c *memmap.Chip, ids []int) []regionDoc {
	if len(ids) == 0 {
		return nil
	}
	docs := make([]regionDoc, 0, len(ids))
	for _, id := range ids {
		r, ok := c.Region(id)
		if !ok {
			continue
		}
		doc := regionDoc{
			Label:   r.Label,
			Start:   fmt.Sprintf("%#x", r.Start),
			Size:    fmt.Sprintf("%#x", r.Size),
			Regions: exportRegions(c, r.ChildIDs()),
		}
		if r.Kind != memmap.KindUnknown {
			doc.Kind = string(r.Kind)
		}
		docs = append(docs, doc)
	}
	return docs
}

// ExportJSON writes a chip to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(c *memmap.Chip, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}

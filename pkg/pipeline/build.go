package pipeline

import (
	"bytes"
	"fmt"
	"os"

	chipio "github.com/matzehuels/chipmap/pkg/io"
	"github.com/matzehuels/chipmap/pkg/manifest"
	"github.com/matzehuels/chipmap/pkg/memmap"
)

// ManifestBytes returns the manifest content the options describe, reading
// from disk only when no inline content is set.
func ManifestBytes(opts Options) ([]byte, error) {
	if opts.Manifest != "" {
		return []byte(opts.Manifest), nil
	}
	data, err := os.ReadFile(opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return data, nil
}

// Build parses a manifest and constructs the chip. The returned chip has
// passed [memmap.Validate]; layout and rendering may rely on that.
func Build(opts Options) (*memmap.Chip, error) {
	data, err := ManifestBytes(opts)
	if err != nil {
		return nil, err
	}
	return BuildFromBytes(data)
}

// BuildFromBytes constructs and validates a chip from manifest content.
// Descriptions starting with "{" decode as JSON, everything else as TOML.
func BuildFromBytes(data []byte) (*memmap.Chip, error) {
	var (
		chip *memmap.Chip
		err  error
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		chip, err = chipio.ReadJSON(bytes.NewReader(data))
	} else {
		chip, err = manifest.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	if err := memmap.Validate(chip); err != nil {
		return nil, err
	}
	return chip, nil
}

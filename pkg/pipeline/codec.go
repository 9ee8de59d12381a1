package pipeline

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

// chipPayload is the cacheable form of a chip. Rebuilding through
// descriptors keeps the arena an implementation detail.
type chipPayload struct {
	Name         string              `msgpack:"name"`
	AddressWidth uint                `msgpack:"address_width"`
	Descriptors  []memmap.Descriptor `msgpack:"descriptors"`
}

func marshalChip(c *memmap.Chip) ([]byte, error) {
	return msgpack.Marshal(chipPayload{
		Name:         c.Name(),
		AddressWidth: c.AddressWidth(),
		Descriptors:  c.Descriptors(),
	})
}

func unmarshalChip(data []byte) (*memmap.Chip, error) {
	var p chipPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return memmap.BuildChip(p.Name, p.AddressWidth, p.Descriptors)
}

func marshalTree(t *layout.Tree) ([]byte, error) {
	return msgpack.Marshal(t)
}

func unmarshalTree(data []byte) (*layout.Tree, error) {
	var t layout.Tree
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

package memmap

// Kind categorizes a region for rendering hints (fill color, legend
// grouping). It is an open set: any non-empty string is a legal custom
// kind, so new peripheral categories don't require a schema change.
// Validation logic never branches on Kind.
type Kind string

// Canonical kinds understood by the bundled renderers. Custom kinds fall
// back to the KindUnknown appearance.
const (
	KindRAM        Kind = "ram"
	KindROM        Kind = "rom"
	KindPeripheral Kind = "peripheral"
	KindReserved   Kind = "reserved"
	KindUnknown    Kind = "unknown"
)

// Canonical reports whether k is one of the predefined kinds.
func (k Kind) Canonical() bool {
	switch k {
	case KindRAM, KindROM, KindPeripheral, KindReserved, KindUnknown:
		return true
	}
	return false
}

// NormalizeKind maps the empty string to KindUnknown and returns any other
// value unchanged. Parsers use this so a missing kind in a description
// still renders with a defined appearance.
func NormalizeKind(k Kind) Kind {
	if k == "" {
		return KindUnknown
	}
	return k
}

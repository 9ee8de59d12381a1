package manifest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Address is a 64-bit address in a description file. TOML integers only
// reach 2^63-1, so addresses in the upper half of a 64-bit space must be
// written as strings ("0xFFFF0000"); both forms decode to the same value.
type Address uint64

// UnmarshalTOML accepts an integer or a string address literal.
func (a *Address) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		u, err := safecast.Conv[uint64](t)
		if err != nil {
			return fmt.Errorf("address %d: %w", t, err)
		}
		*a = Address(u)
		return nil
	case string:
		u, err := parseNumber(t)
		if err != nil {
			return err
		}
		*a = Address(u)
		return nil
	default:
		return fmt.Errorf("address must be an integer or string, got %T", v)
	}
}

// Size is a region size in a description file: an integer, a numeric
// string, or a numeric string with a K/M/G/T unit suffix (powers of 1024).
type Size uint64

// UnmarshalTOML accepts an integer, a string literal, or a suffixed size.
func (s *Size) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		u, err := safecast.Conv[uint64](t)
		if err != nil {
			return fmt.Errorf("size %d: %w", t, err)
		}
		*s = Size(u)
		return nil
	case string:
		u, err := parseSize(t)
		if err != nil {
			return err
		}
		*s = Size(u)
		return nil
	default:
		return fmt.Errorf("size must be an integer or string, got %T", v)
	}
}

// unitExponents maps size suffixes to their power-of-1024 shift.
var unitExponents = map[string]uint{"K": 10, "M": 20, "G": 30, "T": 40}

func parseSize(raw string) (uint64, error) {
	s := strings.TrimSpace(raw)
	for suffix, shift := range unitExponents {
		if !strings.HasSuffix(strings.ToUpper(s), suffix) {
			continue
		}
		n, err := parseNumber(strings.TrimSpace(s[:len(s)-1]))
		if err != nil {
			return 0, err
		}
		if n > math.MaxUint64>>shift {
			return 0, fmt.Errorf("size %q overflows 64 bits", raw)
		}
		return n << shift, nil
	}
	return parseNumber(s)
}

// parseNumber parses a decimal, hex (0x), octal (0o), or binary (0b)
// literal with optional underscore separators.
func parseNumber(raw string) (uint64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return n, nil
}

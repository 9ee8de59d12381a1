// Package layout converts a validated memory map into a renderable
// geometry tree: one node per region with a position and extent along a
// single axis, recursively for nested regions.
//
// Address spaces span many orders of magnitude - multi-gigabyte RAM next
// to byte-sized control registers - so the scale policy is configurable:
//
//   - linear: extents proportional to address ranges, unmapped gaps kept
//     as blank filler nodes
//   - log: extents proportional to log2(size+1), renormalized per sibling
//     level, so tiny peripherals stay visible
//   - equal: every sibling the same extent, for structural overviews
//
// A minimum extent floor keeps regions legible under any mode; siblings
// above the floor shrink proportionally to make room. Layout never
// mutates the chip: re-rendering at a different size needs no
// re-validation, and independent chips can be laid out concurrently.
package layout

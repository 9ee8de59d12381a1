// Package render turns geometry trees into output artifacts.
//
// Four sinks are provided:
//
//   - SVG: a self-contained vertical address strip with nested regions
//     inset per depth
//   - JSON: the canonical data interchange format, for external tooling
//   - DOT/Graphviz: a containment diagram, renderable to SVG or PNG
//   - text: an ANSI-colored strip for the terminal
//
// Sinks treat the geometry tree and chip as read-only and are safe to run
// concurrently over the same inputs.
package render

// Package layout converts a flow graph into positioned Sankey geometry.
//
// [Compute] is the single entry point. It runs six stages over one graph:
//
//  1. Depth assignment - breadth-first layering from zero-inflow sources,
//     with a depth-0 fallback for cyclic and disconnected nodes and a
//     justify mode that right-aligns sinks.
//  2. Value computation - node value is max(inflow, outflow).
//  3. Horizontal placement - evenly spaced columns, one shared node width.
//  4. Initial vertical placement - one global pixels-per-unit scale shared
//     by all columns, stacking by descending value.
//  5. Relaxation - iterative barycenter nudging with linearly decaying
//     damping and per-column collision resolution.
//  6. Link offsets - per-link thickness and vertical offsets that tile each
//     node's height exactly.
//
// The engine produces numbers, not pixels on screen: drawing is the
// renderer's job. It performs no I/O, raises no errors on degenerate input,
// and runs in O(iterations x nodes) plus O(nodes + links).
package layout

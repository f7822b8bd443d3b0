// Package render generates visual output for placements and placement
// trees.
//
// Placements render directly to SVG: module rectangles with labels, the
// dashed symmetry axis of each group, and distinct fills for mirrored
// partners and self-symmetric modules. Placement trees render through
// Graphviz DOT for debugging tree mutations.
package render

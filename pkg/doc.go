// Package pkg provides the core libraries for symplace analog floorplan
// placement.
//
// # Overview
//
// symplace computes symmetry-feasible placements for rectangular circuit
// modules: mirror pairs end up symmetric across a shared axis, and
// self-symmetric modules straddle it. The pkg directory is organized into
// four main areas:
//
//  1. [floorplan], [asf] - domain logic (modules, symmetry groups, the
//     ASF-B*-tree placement engine)
//  2. [anneal], [pipeline] - orchestration (tree perturbation, parse →
//     place → render)
//  3. [cache], [store] - infrastructure (result caching, run archive)
//  4. [netlist], [render], [api] - boundaries (input format, output
//     formats, HTTP surface)
//
// # Architecture
//
// The typical data flow:
//
//	netlist (TOML)
//	      ↓ parse
//	floorplan.Module / floorplan.SymmetryGroup
//	      ↓ place (asf engine, annealed)
//	floorplan.Placement
//	      ↓ render
//	JSON / SVG / DOT / PNG
package pkg

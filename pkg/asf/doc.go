// Package asf implements the symmetry-feasible B*-tree placement engine
// for a single symmetry group.
//
// The engine places the group's representative modules by packing a binary
// tree against a skyline contour, compacts the representatives, derives the
// group's mirror axis from them, projects mirrored and self-symmetric module
// positions, and validates the final placement.
//
// # Tree encoding
//
// Each tree node holds one representative module. A node's left child is
// placed immediately to the right of the node; its right child is placed
// directly above it at the same x. For vertical groups this makes the
// rightmost branch a column of modules sharing one x, which is where
// self-symmetric modules must live so they can straddle a common vertical
// axis. Horizontal groups mirror the arrangement on the leftmost branch.
//
// # Usage
//
//	engine, err := asf.New(group, modules, asf.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := engine.BuildInitialTree(); err != nil {
//	    return err
//	}
//	if !engine.Pack() {
//	    // rejected placement: inspect engine.Err()
//	}
//
// Between Pack calls the tree may be mutated through [Engine.Tree]; a pack
// after an invalid mutation fails validation and returns false, which outer
// optimizers treat as a rejected perturbation.
package asf

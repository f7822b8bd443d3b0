package asf

import (
	"math"

	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
)

// pairTolerance bounds the rounding error allowed on the mirror equations.
const pairTolerance = 1.0

// validatePlacement runs the gating predicates over the finished
// placement: non-negative coordinates, the symmetry equations, and
// pairwise non-overlap. Connectivity is evaluated for diagnostics but does
// not gate: the axis buffer separates mirror halves whenever no
// self-symmetric module straddles the axis, so edge-connectivity is a
// property of the group, not of a particular packing.
func (e *Engine) validatePlacement() error {
	if err := e.ValidateNoNegative(); err != nil {
		return err
	}
	if err := e.ValidateSymmetry(); err != nil {
		return err
	}
	if err := e.ValidateNoOverlap(); err != nil {
		return err
	}
	if !e.ValidateConnectivity() {
		e.logger.Debug("placement is not a symmetry island", "group", e.group.Name())
	}
	return nil
}

// ValidateNoNegative checks that every module of the group has
// non-negative coordinates.
func (e *Engine) ValidateNoNegative() error {
	for _, name := range e.group.Members() {
		m := e.modules[name]
		if m.X() < 0 || m.Y() < 0 {
			return errors.New(errors.ErrCodeNegativeCoord,
				"module %s placed at (%d, %d)", name, m.X(), m.Y())
		}
	}
	return nil
}

// ValidateSymmetry checks the mirror equations: for each pair, the centers
// along the mirror dimension sum to twice the axis and the orthogonal
// centers match, both within the rounding tolerance; each self-symmetric
// module's center lies on the axis.
func (e *Engine) ValidateSymmetry() error {
	vertical := e.group.Type() == floorplan.Vertical

	for _, p := range e.group.Pairs() {
		rep, sym := e.modules[p.Rep], e.modules[p.Sym]
		var mirror, ortho float64
		if vertical {
			mirror = math.Abs(rep.CenterX() + sym.CenterX() - 2*e.axis)
			ortho = math.Abs(rep.CenterY() - sym.CenterY())
		} else {
			mirror = math.Abs(rep.CenterY() + sym.CenterY() - 2*e.axis)
			ortho = math.Abs(rep.CenterX() - sym.CenterX())
		}
		if mirror > pairTolerance || ortho > pairTolerance {
			return errors.New(errors.ErrCodeSymmetryViolation,
				"pair (%s, %s) off axis: mirror error %.2f, orthogonal error %.2f",
				p.Rep, p.Sym, mirror, ortho)
		}
	}

	for _, name := range e.selfSymmetricReps() {
		m := e.modules[name]
		var center float64
		if vertical {
			center = m.CenterX()
		} else {
			center = m.CenterY()
		}
		if math.Abs(center-e.axis) > pairTolerance {
			return errors.New(errors.ErrCodeSymmetryViolation,
				"self-symmetric %s center %.2f off axis %.2f", name, center, e.axis)
		}
	}
	return nil
}

// ValidateNoOverlap checks every pair of group modules for disjoint
// interiors. Shared edges are allowed.
func (e *Engine) ValidateNoOverlap() error {
	names := e.group.Members()
	for i, a := range names {
		for _, b := range names[i+1:] {
			if e.modules[a].Overlaps(e.modules[b]) {
				return errors.New(errors.ErrCodeOverlapDetected,
					"modules %s and %s overlap", a, b)
			}
		}
	}
	return nil
}

// ValidateConnectivity reports whether the group's placed modules form a
// single symmetry island (every rectangle edge-connected to the rest).
func (e *Engine) ValidateConnectivity() bool {
	return e.group.IsSymmetryIsland(e.modules)
}

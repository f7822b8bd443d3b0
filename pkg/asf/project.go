package asf

import (
	"math"

	"github.com/symplace/symplace/pkg/floorplan"
)

// project writes positions for mirrored partners and self-symmetric
// modules from the representatives and the computed axis.
func (e *Engine) project() {
	vertical := e.group.Type() == floorplan.Vertical

	for _, p := range e.group.Pairs() {
		e.projectPair(e.modules[p.Rep], e.modules[p.Sym], vertical)
	}
	for _, name := range e.selfSymmetricReps() {
		e.projectSelf(e.modules[name], vertical)
	}
}

// projectPair mirrors sym across the axis from rep. When the pair's
// current dimensions differ, a 90-degree swap is tried first; a pair whose
// dimensions cannot be matched is logged and mirrored with its current
// dimensions. Pairs sharing the same base footprint keep their rotation
// state synchronized with the representative.
func (e *Engine) projectPair(rep, sym *floorplan.Module, vertical bool) {
	rotated := false
	if rep.Width() != sym.Width() || rep.Height() != sym.Height() {
		if rep.Width() == sym.Height() && rep.Height() == sym.Width() {
			sym.Rotate()
			rotated = true
			e.logger.Debug("rotated pair partner", "rep", rep.Name(), "sym", sym.Name())
		} else {
			e.logger.Warn("pair dimensions cannot be matched by rotation",
				"rep", rep.Name(), "sym", sym.Name())
		}
	}

	if vertical {
		symCenter := 2*e.axis - rep.CenterX()
		x := int(math.Round(symCenter - float64(sym.Width())/2))
		sym.SetPosition(x, rep.Y())
	} else {
		symCenter := 2*e.axis - rep.CenterY()
		y := int(math.Round(symCenter - float64(sym.Height())/2))
		sym.SetPosition(rep.X(), y)
	}

	// Only pairs with identical base footprints follow the representative's
	// rotation; a transposed partner that was not swapped this pass must
	// keep its own state or its dimensions would drift between packs.
	if !rotated && sameFootprint(rep, sym) {
		sym.SetRotation(rep.Rotated())
	}
}

// sameFootprint reports whether two modules share the same unrotated
// dimensions.
func sameFootprint(a, b *floorplan.Module) bool {
	aw, ah := a.Width(), a.Height()
	if a.Rotated() {
		aw, ah = ah, aw
	}
	bw, bh := b.Width(), b.Height()
	if b.Rotated() {
		bw, bh = bh, bw
	}
	return aw == bw && ah == bh
}

// projectSelf centers a self-symmetric module on the axis along the mirror
// dimension. The rounded position is probed one unit either way when the
// residual exceeds 0.25, which bounds the final center error by 0.5.
func (e *Engine) projectSelf(m *floorplan.Module, vertical bool) {
	if vertical {
		m.SetPosition(centerOnAxis(e.axis, m.Width()), m.Y())
	} else {
		m.SetPosition(m.X(), centerOnAxis(e.axis, m.Height()))
	}
}

// centerOnAxis returns the near-edge coordinate that best centers a span
// of the given extent on the axis.
func centerOnAxis(axis float64, extent int) int {
	half := float64(extent) / 2
	pos := int(math.Round(axis - half))
	residual := math.Abs(float64(pos) + half - axis)
	if residual <= 0.25 {
		return pos
	}
	best := pos
	for _, alt := range []int{pos - 1, pos + 1} {
		if r := math.Abs(float64(alt) + half - axis); r < residual {
			residual = r
			best = alt
		}
	}
	return best
}

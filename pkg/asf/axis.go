package asf

import "github.com/symplace/symplace/pkg/floorplan"

// computeAxis derives the symmetry axis from the packed representatives
// and records it on both the engine and the group.
//
// With at least one mirror pair, the axis must clear two bounds: every
// mirrored partner's near edge must land at a non-negative coordinate, and
// the axis must sit past the far edge of every paired representative. A
// 1.0 buffer on top absorbs the rounding applied when partner positions
// are converted back to integers.
//
// With only self-symmetric modules, the axis is pushed past the layout far
// edge by half the widest self-symmetric module plus the same buffer.
func (e *Engine) computeAxis() {
	vertical := e.group.Type() == floorplan.Vertical

	if len(e.partner) > 0 {
		minAxis := 0.0
		for rep := range e.partner {
			repMod := e.modules[rep]
			if vertical {
				minAxis = max(minAxis, float64(repMod.Right()))
			} else {
				minAxis = max(minAxis, float64(repMod.Top()))
			}
		}
		for rep, sym := range e.partner {
			repMod, symMod := e.modules[rep], e.modules[sym]
			var bound float64
			if vertical {
				bound = (repMod.CenterX() + float64(symMod.Width())/2) / 2
			} else {
				bound = (repMod.CenterY() + float64(symMod.Height())/2) / 2
			}
			minAxis = max(minAxis, bound)
		}
		e.setAxis(minAxis + 1.0)
		return
	}

	// Self-symmetric only.
	far := 0
	halfSpan := 0.0
	for _, name := range e.reps {
		m := e.modules[name]
		if vertical {
			far = max(far, m.Right())
		} else {
			far = max(far, m.Top())
		}
	}
	for _, name := range e.selfSymmetricReps() {
		m := e.modules[name]
		if vertical {
			halfSpan = max(halfSpan, float64(m.Width())/2)
		} else {
			halfSpan = max(halfSpan, float64(m.Height())/2)
		}
	}
	e.setAxis(float64(far) + halfSpan + 1)
}

func (e *Engine) setAxis(axis float64) {
	e.axis = axis
	e.axisSet = true
	e.group.SetAxisPosition(axis)
	e.logger.Debug("computed symmetry axis", "group", e.group.Name(), "axis", axis)
}

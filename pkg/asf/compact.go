package asf

import (
	"slices"

	"github.com/symplace/symplace/pkg/floorplan"
)

// compactRepresentatives squeezes slack out of the representative
// placement before the axis is derived. Vertical groups compact in x then
// y (minimizing width), horizontal groups the other way around. Mirrored
// and self-symmetric positions are rebuilt from the compacted
// representatives afterwards, so only representatives move here.
func (e *Engine) compactRepresentatives() {
	reps := slices.Clone(e.reps)
	if len(reps) == 0 {
		return
	}

	// Normalize to the origin so every representative is non-negative.
	first := e.modules[reps[0]]
	minX, minY := first.X(), first.Y()
	for _, name := range reps[1:] {
		m := e.modules[name]
		minX = min(minX, m.X())
		minY = min(minY, m.Y())
	}
	if minX != 0 || minY != 0 {
		for _, name := range reps {
			m := e.modules[name]
			m.SetPosition(m.X()-minX, m.Y()-minY)
		}
	}

	if e.group.Type() == floorplan.Vertical {
		e.shiftLeft(reps)
		e.shiftDown(reps)
	} else {
		e.shiftDown(reps)
		e.shiftLeft(reps)
	}
}

// Compact re-compacts the representatives of an already packed placement
// and rebuilds the symmetric positions from the recorded axis. It is a
// no-op on an engine that has not packed yet.
func (e *Engine) Compact() {
	if !e.axisSet {
		return
	}
	e.compactRepresentatives()
	e.project()
}

// shiftLeft visits representatives in ascending x and moves each as far
// left as every earlier module with an overlapping y-span allows.
func (e *Engine) shiftLeft(reps []string) {
	slices.SortStableFunc(reps, func(a, b string) int {
		return e.modules[a].X() - e.modules[b].X()
	})
	for i, name := range reps {
		curr := e.modules[name]
		minX := 0
		for _, prevName := range reps[:i] {
			prev := e.modules[prevName]
			if yOverlap(curr, prev) {
				minX = max(minX, prev.Right())
			}
		}
		if minX < curr.X() {
			curr.SetPosition(minX, curr.Y())
		}
	}
}

// shiftDown visits representatives in ascending y and moves each as far
// down as every earlier module with an overlapping x-span allows.
func (e *Engine) shiftDown(reps []string) {
	slices.SortStableFunc(reps, func(a, b string) int {
		return e.modules[a].Y() - e.modules[b].Y()
	})
	for i, name := range reps {
		curr := e.modules[name]
		minY := 0
		for _, prevName := range reps[:i] {
			prev := e.modules[prevName]
			if xOverlap(curr, prev) {
				minY = max(minY, prev.Top())
			}
		}
		if minY < curr.Y() {
			curr.SetPosition(curr.X(), minY)
		}
	}
}

func xOverlap(a, b *floorplan.Module) bool {
	return a.X() < b.Right() && b.X() < a.Right()
}

func yOverlap(a, b *floorplan.Module) bool {
	return a.Y() < b.Top() && b.Y() < a.Top()
}

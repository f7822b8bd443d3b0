package floorplan

import "fmt"

// Module is a rectangular block with a stable name, fixed dimensions, and a
// mutable placement. Width and height describe the unrotated footprint;
// Width() and Height() reflect the current rotation state.
//
// Positions are written by the placement engine. Callers that need to keep a
// placement across engine calls must snapshot positions themselves - each
// pack overwrites them.
type Module struct {
	name    string
	width   int
	height  int
	x, y    int
	rotated bool
}

// NewModule creates a module with the given name and footprint.
// Dimensions must be positive; the initial position is (0, 0), unrotated.
func NewModule(name string, width, height int) *Module {
	return &Module{name: name, width: width, height: height}
}

// Name returns the module's stable identifier.
func (m *Module) Name() string { return m.name }

// Width returns the horizontal extent under the current rotation.
func (m *Module) Width() int {
	if m.rotated {
		return m.height
	}
	return m.width
}

// Height returns the vertical extent under the current rotation.
func (m *Module) Height() int {
	if m.rotated {
		return m.width
	}
	return m.height
}

// X returns the left edge of the module.
func (m *Module) X() int { return m.x }

// Y returns the bottom edge of the module.
func (m *Module) Y() int { return m.y }

// SetPosition moves the module's bottom-left corner to (x, y).
func (m *Module) SetPosition(x, y int) {
	m.x = x
	m.y = y
}

// Rotate toggles the 90-degree rotation, swapping width and height.
func (m *Module) Rotate() { m.rotated = !m.rotated }

// Rotated reports whether the module is currently rotated.
func (m *Module) Rotated() bool { return m.rotated }

// SetRotation forces the rotation state.
func (m *Module) SetRotation(rotated bool) { m.rotated = rotated }

// CenterX returns the horizontal center of the placed module.
func (m *Module) CenterX() float64 { return float64(m.x) + float64(m.Width())/2 }

// CenterY returns the vertical center of the placed module.
func (m *Module) CenterY() float64 { return float64(m.y) + float64(m.Height())/2 }

// Right returns the x-coordinate just past the module's right edge.
func (m *Module) Right() int { return m.x + m.Width() }

// Top returns the y-coordinate just past the module's top edge.
func (m *Module) Top() int { return m.y + m.Height() }

// Overlaps reports whether the interiors of m and other intersect.
// Shared boundary edges do not count as overlap.
func (m *Module) Overlaps(other *Module) bool {
	if m.Right() <= other.x || other.Right() <= m.x {
		return false
	}
	if m.Top() <= other.y || other.Top() <= m.y {
		return false
	}
	return true
}

// String returns a compact debug representation.
func (m *Module) String() string {
	return fmt.Sprintf("%s[%dx%d@(%d,%d)]", m.name, m.Width(), m.Height(), m.x, m.y)
}

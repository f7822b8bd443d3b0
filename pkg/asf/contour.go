package asf

// contourPoint is one element of the skyline list. The skyline height
// equals the point's height from its x up to the next point's x.
type contourPoint struct {
	x      int
	height int
	next   *contourPoint
}

// Contour is the piecewise-constant upper envelope of all rectangles placed
// so far, scanned left to right. Points are kept strictly sorted by x. The
// contour is rebuilt for every pack; it never survives across packs.
type Contour struct {
	head *contourPoint
}

// NewContour creates an empty contour.
func NewContour() *Contour { return &Contour{} }

// Reset drops all points, producing the empty contour.
func (c *Contour) Reset() { c.head = nil }

// HeightAt returns the skyline height at x, or 0 where the contour is not
// defined (left of the first point or past the last segment).
func (c *Contour) HeightAt(x int) int {
	h := 0
	for p := c.head; p != nil && p.x <= x; p = p.next {
		h = p.height
	}
	return h
}

// MaxHeightOver returns the maximum skyline height across the half-open
// interval [x, x+width). Returns 0 if no contour segment intersects it.
func (c *Contour) MaxHeightOver(x, width int) int {
	right := x + width
	maxH := 0
	prevH := 0
	for p := c.head; p != nil; p = p.next {
		if p.x >= right {
			break
		}
		if p.x <= x {
			prevH = p.height
			continue
		}
		// Segment starting before x extends into the interval.
		if prevH > maxH {
			maxH = prevH
		}
		prevH = 0
		if p.height > maxH {
			maxH = p.height
		}
	}
	if prevH > maxH {
		maxH = prevH
	}
	return maxH
}

// Insert raises the skyline to cover the rectangle [x, x+width) at top edge
// y+height. Intermediate points that fall under the new top are removed;
// the right edge carries the height the skyline had just past the rectangle
// before the insert, so segments to the right keep their meaning.
func (c *Contour) Insert(x, y, width, height int) {
	right := x + width
	top := y + height

	if c.head == nil {
		c.head = &contourPoint{x: x, height: top, next: &contourPoint{x: right}}
		return
	}

	carry := c.HeightAt(right)

	// Skip points left of the rectangle.
	var prev *contourPoint
	curr := c.head
	for curr != nil && curr.x < x {
		prev = curr
		curr = curr.next
	}

	// Establish the point at the left edge.
	switch {
	case curr == nil || curr.x > x:
		p := &contourPoint{x: x, height: top, next: curr}
		if prev != nil {
			prev.next = p
		} else {
			c.head = p
		}
		prev = p
	default: // curr.x == x
		curr.height = max(curr.height, top)
		prev = curr
		curr = curr.next
	}

	// Remove intermediate points swallowed by the new top; keep taller ones.
	for curr != nil && curr.x < right {
		if curr.height <= top {
			prev.next = curr.next
			curr = curr.next
		} else {
			prev = curr
			curr = curr.next
		}
	}

	// Establish the point at the right edge.
	if curr == nil || curr.x > right {
		prev.next = &contourPoint{x: right, height: carry, next: curr}
	}
}

// Points returns the (x, height) pairs of the contour in order.
// Used by tests and diagnostics.
func (c *Contour) Points() [][2]int {
	var pts [][2]int
	for p := c.head; p != nil; p = p.next {
		pts = append(pts, [2]int{p.x, p.height})
	}
	return pts
}

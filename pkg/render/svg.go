package render

import (
	"bytes"
	"fmt"

	"github.com/symplace/symplace/pkg/floorplan"
)

// Fill colors per module role.
const (
	fillDefault = "#cfe3f5" // plain modules
	fillPartner = "#f5d9cf" // mirrored partners
	fillSelf    = "#d9f5cf" // self-symmetric modules
	strokeColor = "#40495a"
	axisColor   = "#c03c3c"
)

// SVGOptions configures placement rendering.
type SVGOptions struct {
	// Scale is the number of SVG units per placement unit. Zero means 10.
	Scale float64

	// Margin is the padding around the drawing in placement units.
	// Zero means 1.
	Margin float64

	// Labels draws module names centered in each rectangle.
	Labels bool
}

func (o *SVGOptions) setDefaults() {
	if o.Scale == 0 {
		o.Scale = 10
	}
	if o.Margin == 0 {
		o.Margin = 1
	}
}

// SVG renders a placement. Groups listed in the placement draw their axis
// as a dashed line; the groups' pair partners and self-symmetric modules
// get role-specific fills.
//
// Placement coordinates grow upward; SVG's grow downward, so the drawing
// is flipped around the bounding box.
func SVG(p floorplan.Placement, groups []*floorplan.SymmetryGroup, opts SVGOptions) []byte {
	opts.setDefaults()

	var maxX, maxY float64
	for _, b := range p.Blocks {
		maxX = max(maxX, float64(b.Right()))
		maxY = max(maxY, float64(b.Top()))
	}
	roles := collectRoles(groups)

	width := (maxX + 2*opts.Margin) * opts.Scale
	height := (maxY + 2*opts.Margin) * opts.Scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for _, b := range p.Blocks {
		x := (float64(b.X) + opts.Margin) * opts.Scale
		y := (maxY - float64(b.Top()) + opts.Margin) * opts.Scale
		w := float64(b.Width) * opts.Scale
		h := float64(b.Height) * opts.Scale

		fmt.Fprintf(&buf,
			`  <rect id="block-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			b.Name, x, y, w, h, roles.fill(b.Name), strokeColor)

		if opts.Labels {
			fmt.Fprintf(&buf,
				`  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
				x+w/2, y+h/2, opts.Scale*0.8, strokeColor, b.Name)
		}
	}

	for _, axis := range p.Groups {
		pos := (axis.Position + opts.Margin) * opts.Scale
		if axis.Type == floorplan.Horizontal.String() {
			y := (maxY - axis.Position + opts.Margin) * opts.Scale
			fmt.Fprintf(&buf,
				`  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
				y, width, y, axisColor)
		} else {
			fmt.Fprintf(&buf,
				`  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
				pos, pos, height, axisColor)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// roleSet classifies module names by their symmetry role.
type roleSet struct {
	partners map[string]bool
	selfSym  map[string]bool
}

func collectRoles(groups []*floorplan.SymmetryGroup) roleSet {
	r := roleSet{partners: make(map[string]bool), selfSym: make(map[string]bool)}
	for _, g := range groups {
		for _, p := range g.Pairs() {
			r.partners[p.Sym] = true
		}
		for _, name := range g.SelfSymmetric() {
			r.selfSym[name] = true
		}
	}
	return r
}

func (r roleSet) fill(name string) string {
	switch {
	case r.selfSym[name]:
		return fillSelf
	case r.partners[name]:
		return fillPartner
	default:
		return fillDefault
	}
}

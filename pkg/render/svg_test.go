package render

import (
	"strings"
	"testing"

	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/floorplan"
)

func samplePlacement() (floorplan.Placement, []*floorplan.SymmetryGroup) {
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	_ = g.AddPair("a", "a2")
	_ = g.AddSelfSymmetric("c")

	p := floorplan.Placement{
		Blocks: []floorplan.Block{
			{Name: "a", X: 0, Y: 0, Width: 4, Height: 2},
			{Name: "a2", X: 6, Y: 0, Width: 4, Height: 2},
			{Name: "c", X: 2, Y: 2, Width: 6, Height: 2},
		},
		Groups: []floorplan.Axis{
			{Group: "sg", Type: "vertical", Position: 5},
		},
	}
	return p, []*floorplan.SymmetryGroup{g}
}

func TestSVGContainsBlocksAndAxis(t *testing.T) {
	p, groups := samplePlacement()
	svg := string(SVG(p, groups, SVGOptions{Labels: true}))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	for _, id := range []string{"block-a", "block-a2", "block-c"} {
		if !strings.Contains(svg, id) {
			t.Errorf("SVG missing %s", id)
		}
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("SVG missing dashed axis line")
	}
	if !strings.Contains(svg, ">a<") {
		t.Error("SVG missing module label")
	}
}

func TestSVGRoleFills(t *testing.T) {
	p, groups := samplePlacement()
	svg := string(SVG(p, groups, SVGOptions{}))

	if !strings.Contains(svg, fillPartner) {
		t.Error("partner fill missing")
	}
	if !strings.Contains(svg, fillSelf) {
		t.Error("self-symmetric fill missing")
	}
	if !strings.Contains(svg, fillDefault) {
		t.Error("default fill missing")
	}
}

func TestSVGWithoutLabels(t *testing.T) {
	p, groups := samplePlacement()
	svg := string(SVG(p, groups, SVGOptions{}))

	if strings.Contains(svg, "<text") {
		t.Error("labels rendered without Labels option")
	}
}

func TestTreeDOT(t *testing.T) {
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	_ = g.AddPair("d", "d2")
	_ = g.AddSelfSymmetric("c")

	tree := asf.NewTree(&asf.Node{
		Name:  "d",
		Right: &asf.Node{Name: "c"},
	})
	dot := TreeDOT(tree, g)

	if !strings.Contains(dot, `"d" -> "c" [label="R"]`) {
		t.Errorf("missing right edge in DOT:\n%s", dot)
	}
	if !strings.Contains(dot, "dashed") {
		t.Error("self-symmetric node not dashed")
	}
}

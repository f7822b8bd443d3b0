package asf

import (
	"slices"
	"testing"

	"github.com/symplace/symplace/pkg/floorplan"
)

func buildEngine(t *testing.T, g *floorplan.SymmetryGroup, table map[string]*floorplan.Module) *Engine {
	t.Helper()
	e, err := New(g, table)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.BuildInitialTree(); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestBuildInitialTreeSortsByMinorDimension(t *testing.T) {
	table := modTable(
		floorplan.NewModule("p1", 2, 4),
		floorplan.NewModule("p1x", 2, 4),
		floorplan.NewModule("p2", 2, 1),
		floorplan.NewModule("p2x", 2, 1),
		floorplan.NewModule("p3", 2, 3),
		floorplan.NewModule("p3x", 2, 3),
		floorplan.NewModule("p4", 2, 2),
		floorplan.NewModule("p4x", 2, 2),
	)
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	for _, p := range [][2]string{{"p1", "p1x"}, {"p2", "p2x"}, {"p3", "p3x"}, {"p4", "p4x"}} {
		if err := g.AddPair(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}

	e := buildEngine(t, g, table)
	tree := e.Tree()

	// The shortest module roots the tree; the rest alternate between
	// stacking (right) and spreading (left) slots.
	root := tree.Root()
	if root.Name != "p2" {
		t.Fatalf("root = %s, want p2", root.Name)
	}
	if root.Right == nil || root.Right.Name != "p4" {
		t.Fatalf("root right child = %v, want p4", root.Right)
	}
	if root.Right.Left == nil || root.Right.Left.Name != "p3" {
		t.Fatalf("p4 left child = %v, want p3", root.Right.Left)
	}
	if root.Right.Left.Right == nil || root.Right.Left.Right.Name != "p1" {
		t.Fatalf("p3 right child = %v, want p1", root.Right.Left.Right)
	}
}

func TestBuildInitialTreeSelfChainFirst(t *testing.T) {
	table := modTable(
		floorplan.NewModule("d", 2, 2),
		floorplan.NewModule("d2", 2, 2),
		floorplan.NewModule("s1", 6, 2),
		floorplan.NewModule("s2", 4, 2),
	)
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	if err := g.AddPair("d", "d2"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"s1", "s2"} {
		if err := g.AddSelfSymmetric(name); err != nil {
			t.Fatal(err)
		}
	}

	e := buildEngine(t, g, table)
	branch := e.Tree().BoundaryBranch(BoundaryRight)

	// Both self-symmetric modules chain down the rightmost branch in
	// registration order, below the pair-representative root.
	if want := []string{"d", "s1", "s2"}; !slices.Equal(branch, want) {
		t.Errorf("rightmost branch = %v, want %v", branch, want)
	}
}

func TestBuildInitialTreeSelfOnlyGroup(t *testing.T) {
	table := modTable(
		floorplan.NewModule("s1", 6, 2),
		floorplan.NewModule("s2", 4, 2),
	)
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	for _, name := range []string{"s1", "s2"} {
		if err := g.AddSelfSymmetric(name); err != nil {
			t.Fatal(err)
		}
	}

	e := buildEngine(t, g, table)
	if want := []string{"s1", "s2"}; !slices.Equal(e.Tree().BoundaryBranch(BoundaryRight), want) {
		t.Errorf("rightmost branch = %v, want %v", e.Tree().BoundaryBranch(BoundaryRight), want)
	}

	if !e.Pack() {
		t.Fatalf("Pack() failed: %v", e.Err())
	}
	axis, _ := e.Axis()
	for _, name := range []string{"s1", "s2"} {
		m := table[name]
		if d := m.CenterX() - axis; d > 0.5 || d < -0.5 {
			t.Errorf("%s center %.1f off axis %.1f", name, m.CenterX(), axis)
		}
	}
}

func TestBuildInitialTreeHorizontalUsesLeftChain(t *testing.T) {
	table := modTable(
		floorplan.NewModule("d", 2, 2),
		floorplan.NewModule("d2", 2, 2),
		floorplan.NewModule("s", 2, 6),
	)
	g := floorplan.NewSymmetryGroup("sg", floorplan.Horizontal)
	if err := g.AddPair("d", "d2"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddSelfSymmetric("s"); err != nil {
		t.Fatal(err)
	}

	e := buildEngine(t, g, table)
	if branch := e.Tree().BoundaryBranch(BoundaryLeft); !slices.Contains(branch, "s") {
		t.Errorf("leftmost branch = %v, want it to hold s", branch)
	}
}

func TestBuildInitialTreeRebuildsCleanly(t *testing.T) {
	table := modTable(
		floorplan.NewModule("a", 4, 2),
		floorplan.NewModule("a2", 4, 2),
	)
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	if err := g.AddPair("a", "a2"); err != nil {
		t.Fatal(err)
	}

	e := buildEngine(t, g, table)
	first := e.Preorder()

	if err := e.BuildInitialTree(); err != nil {
		t.Fatal(err)
	}
	if second := e.Preorder(); !slices.Equal(first, second) {
		t.Errorf("rebuild changed the tree: %v vs %v", first, second)
	}
}

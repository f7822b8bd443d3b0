package floorplan

import (
	"errors"
	"slices"
	"testing"
)

func TestSymmetryGroupRoles(t *testing.T) {
	g := NewSymmetryGroup("sg", Vertical)
	if err := g.AddPair("a", "a2"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddSelfSymmetric("c"); err != nil {
		t.Fatal(err)
	}

	if got, want := g.Representatives(), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Representatives() = %v, want %v", got, want)
	}
	if got, want := g.Members(), []string{"a", "a2", "c"}; !slices.Equal(got, want) {
		t.Errorf("Members() = %v, want %v", got, want)
	}
	if got := g.PartnerMap(); got["a"] != "a2" {
		t.Errorf("PartnerMap() = %v", got)
	}
	if !g.IsSelfSymmetric("c") || g.IsSelfSymmetric("a") {
		t.Error("IsSelfSymmetric misclassifies members")
	}
}

func TestSymmetryGroupRejectsDuplicates(t *testing.T) {
	g := NewSymmetryGroup("sg", Vertical)
	if err := g.AddPair("a", "a2"); err != nil {
		t.Fatal(err)
	}

	if err := g.AddPair("a", "b"); !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("AddPair(a, b) = %v, want ErrDuplicateMember", err)
	}
	if err := g.AddSelfSymmetric("a2"); !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("AddSelfSymmetric(a2) = %v, want ErrDuplicateMember", err)
	}
	if err := g.AddPair("x", "x"); !errors.Is(err, ErrPairMember) {
		t.Errorf("AddPair(x, x) = %v, want ErrPairMember", err)
	}
}

func TestAxisPosition(t *testing.T) {
	g := NewSymmetryGroup("sg", Horizontal)
	if _, ok := g.AxisPosition(); ok {
		t.Error("AxisPosition() set before any pack")
	}
	g.SetAxisPosition(3.5)
	if axis, ok := g.AxisPosition(); !ok || axis != 3.5 {
		t.Errorf("AxisPosition() = %v, %v", axis, ok)
	}
}

func TestIsSymmetryIsland(t *testing.T) {
	g := NewSymmetryGroup("sg", Vertical)
	if err := g.AddPair("a", "a2"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddSelfSymmetric("c"); err != nil {
		t.Fatal(err)
	}

	a := NewModule("a", 2, 2)
	a2 := NewModule("a2", 2, 2)
	c := NewModule("c", 6, 2)
	table := map[string]*Module{"a": a, "a2": a2, "c": c}

	// c bridges the two halves along its bottom edge.
	a.SetPosition(0, 0)
	a2.SetPosition(4, 0)
	c.SetPosition(0, 2)
	if !g.IsSymmetryIsland(table) {
		t.Error("IsSymmetryIsland() = false for connected placement")
	}

	// Detach a2 with a gap.
	a2.SetPosition(10, 0)
	if g.IsSymmetryIsland(table) {
		t.Error("IsSymmetryIsland() = true with a detached module")
	}

	// Corner contact only is not connectivity.
	a2.SetPosition(6, 4)
	if g.IsSymmetryIsland(table) {
		t.Error("IsSymmetryIsland() = true for corner contact")
	}
}

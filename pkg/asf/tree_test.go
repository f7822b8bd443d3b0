package asf

import (
	"errors"
	"slices"
	"testing"
)

// testTree builds a small tree by hand:
//
//	    a
//	   / \
//	  b   c
//	 /     \
//	d       e
func testTree() *Tree {
	d := &Node{Name: "d"}
	e := &Node{Name: "e"}
	b := &Node{Name: "b", Left: d}
	c := &Node{Name: "c", Right: e}
	return NewTree(&Node{Name: "a", Left: b, Right: c})
}

func TestTreeTraversals(t *testing.T) {
	tr := testTree()

	if got, want := tr.Preorder(), []string{"a", "b", "d", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("Preorder() = %v, want %v", got, want)
	}
	if got, want := tr.Inorder(), []string{"d", "b", "a", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("Inorder() = %v, want %v", got, want)
	}
	if got := tr.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}

func TestTreeTraversalsEmpty(t *testing.T) {
	tr := NewTree(nil)
	if got := tr.Preorder(); got != nil {
		t.Errorf("Preorder() on empty tree = %v, want nil", got)
	}
	if got := tr.Len(); got != 0 {
		t.Errorf("Len() on empty tree = %d, want 0", got)
	}
}

func TestTreeFind(t *testing.T) {
	tr := testTree()
	if n := tr.Find("e"); n == nil || n.Name != "e" {
		t.Fatalf("Find(e) = %v", n)
	}
	if n := tr.Find("zz"); n != nil {
		t.Fatalf("Find(zz) = %v, want nil", n)
	}
}

func TestTreeValidate(t *testing.T) {
	reps := []string{"a", "b", "c", "d", "e"}

	t.Run("valid", func(t *testing.T) {
		if err := testTree().Validate(reps); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing member", func(t *testing.T) {
		tr := testTree()
		err := tr.Validate(append(slices.Clone(reps), "f"))
		if !errors.Is(err, ErrMissingMember) {
			t.Errorf("Validate() = %v, want ErrMissingMember", err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		err := testTree().Validate([]string{"a", "b", "c", "d"})
		if !errors.Is(err, ErrUnknownMember) {
			t.Errorf("Validate() = %v, want ErrUnknownMember", err)
		}
	})

	t.Run("shared node", func(t *testing.T) {
		tr := testTree()
		// Point two parents at the same node.
		shared := tr.Root().Left.Left
		tr.Root().Right.Left = shared
		if err := tr.Validate(reps); !errors.Is(err, ErrNodeRevisited) {
			t.Errorf("Validate() = %v, want ErrNodeRevisited", err)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		tr := testTree()
		tr.Root().Right.Right.Name = "d"
		if err := tr.Validate(reps); !errors.Is(err, ErrNodeRevisited) {
			t.Errorf("Validate() = %v, want ErrNodeRevisited", err)
		}
	})
}

func TestTreeBoundaryBranch(t *testing.T) {
	tr := testTree()

	if got, want := tr.BoundaryBranch(BoundaryRight), []string{"a", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("BoundaryBranch(right) = %v, want %v", got, want)
	}
	if got, want := tr.BoundaryBranch(BoundaryLeft), []string{"a", "b", "d"}; !slices.Equal(got, want) {
		t.Errorf("BoundaryBranch(left) = %v, want %v", got, want)
	}
}

func TestTreeValidateBoundary(t *testing.T) {
	tr := testTree()

	if err := tr.ValidateBoundary(BoundaryRight, []string{"c", "e"}); err != nil {
		t.Errorf("ValidateBoundary(right, c+e) = %v, want nil", err)
	}
	if err := tr.ValidateBoundary(BoundaryRight, []string{"b"}); !errors.Is(err, ErrOffBoundary) {
		t.Errorf("ValidateBoundary(right, b) = %v, want ErrOffBoundary", err)
	}
	if err := tr.ValidateBoundary(BoundaryLeft, []string{"b", "d"}); err != nil {
		t.Errorf("ValidateBoundary(left, b+d) = %v, want nil", err)
	}
}

func TestTreeVacantSlots(t *testing.T) {
	tr := testTree()

	// DFS preferring left finds b first (b has no right child).
	if n := tr.FindVacantRight(); n == nil || n.Name != "b" {
		t.Errorf("FindVacantRight() = %v, want b", n)
	}
	// DFS preferring right finds c first (c has no left child).
	if n := tr.FindVacantLeft(); n == nil || n.Name != "c" {
		t.Errorf("FindVacantLeft() = %v, want c", n)
	}
}

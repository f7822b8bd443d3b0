package asf

import (
	"errors"
	"slices"
)

var (
	// ErrNodeRevisited is returned by [Tree.Validate] when a node is
	// reachable through more than one path, meaning a node has two parents
	// or the tree contains a cycle.
	ErrNodeRevisited = errors.New("node reachable through more than one path")

	// ErrUnknownMember is returned by [Tree.Validate] when the tree holds a
	// module that is not part of the representative set.
	ErrUnknownMember = errors.New("tree holds a module outside the representative set")

	// ErrMissingMember is returned by [Tree.Validate] when a representative
	// module does not appear in the tree.
	ErrMissingMember = errors.New("representative module missing from tree")

	// ErrOffBoundary is returned by [Tree.ValidateBoundary] when a
	// self-symmetric module sits off the boundary branch.
	ErrOffBoundary = errors.New("self-symmetric module off the boundary branch")
)

// Node is one vertex of the placement tree, holding the name of a
// representative module. Children encode geometric relations: the left
// child packs to the right of the node, the right child packs above it.
//
// Left and Right are exported so that outer optimizers can rearrange the
// tree between packs. Structural damage introduced that way is caught by
// [Tree.Validate] on the next pack.
type Node struct {
	Name  string
	Left  *Node
	Right *Node
}

// Tree is a rooted binary tree over representative modules. The zero value
// is an empty tree.
type Tree struct {
	root *Node
}

// NewTree creates a tree with the given root (which may be nil).
func NewTree(root *Node) *Tree { return &Tree{root: root} }

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// SetRoot replaces the root node.
func (t *Tree) SetRoot(root *Node) { t.root = root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	for range t.preorder() {
		n++
	}
	return n
}

// Preorder returns the module names in pre-order (node, left, right).
// Parents precede both children, so the sequence is safe to use for
// placements that require a positioned parent.
func (t *Tree) Preorder() []string {
	var names []string
	for _, n := range t.preorder() {
		names = append(names, n.Name)
	}
	return names
}

// Inorder returns the module names in in-order (left, node, right).
func (t *Tree) Inorder() []string {
	var names []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		names = append(names, n.Name)
		walk(n.Right)
	}
	walk(t.root)
	return names
}

// preorder returns all nodes in pre-order.
func (t *Tree) preorder() []*Node {
	var nodes []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		nodes = append(nodes, n)
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.root)
	return nodes
}

// Find returns the node holding the named module, or nil.
func (t *Tree) Find(name string) *Node {
	for _, n := range t.preorder() {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Validate checks structural integrity against the representative set:
// every node is reachable through exactly one path (single parent, no
// cycles) and tree membership equals the set of representatives.
func (t *Tree) Validate(representatives []string) error {
	seen := make(map[*Node]bool)
	names := make(map[string]bool)

	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n == nil {
			return nil
		}
		if seen[n] {
			return ErrNodeRevisited
		}
		seen[n] = true
		if names[n.Name] {
			return ErrNodeRevisited
		}
		names[n.Name] = true
		if err := walk(n.Left); err != nil {
			return err
		}
		return walk(n.Right)
	}
	if err := walk(t.root); err != nil {
		return err
	}

	for name := range names {
		if !slices.Contains(representatives, name) {
			return ErrUnknownMember
		}
	}
	for _, name := range representatives {
		if !names[name] {
			return ErrMissingMember
		}
	}
	return nil
}

// BoundaryDir selects which child link forms the boundary branch.
type BoundaryDir int

const (
	// BoundaryRight follows Right links from the root (vertical groups).
	BoundaryRight BoundaryDir = iota
	// BoundaryLeft follows Left links from the root (horizontal groups).
	BoundaryLeft
)

// BoundaryBranch returns the module names on the boundary branch: the chain
// obtained by repeatedly following the given child direction from the root.
func (t *Tree) BoundaryBranch(dir BoundaryDir) []string {
	var names []string
	for n := t.root; n != nil; {
		names = append(names, n.Name)
		if dir == BoundaryRight {
			n = n.Right
		} else {
			n = n.Left
		}
	}
	return names
}

// ValidateBoundary checks that every name in selfSymmetric lies on the
// boundary branch in the given direction. Modules on the branch that are
// not self-symmetric are permitted.
func (t *Tree) ValidateBoundary(dir BoundaryDir, selfSymmetric []string) error {
	branch := t.BoundaryBranch(dir)
	for _, name := range selfSymmetric {
		if !slices.Contains(branch, name) {
			return ErrOffBoundary
		}
	}
	return nil
}

// boundaryTail returns the last node of the boundary branch, or nil for an
// empty tree.
func (t *Tree) boundaryTail(dir BoundaryDir) *Node {
	n := t.root
	if n == nil {
		return nil
	}
	for {
		var next *Node
		if dir == BoundaryRight {
			next = n.Right
		} else {
			next = n.Left
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// FindVacantRight returns the first node in a DFS that has no right child.
// The search prefers descending left first, matching the slot search used
// when growing a vertical stack.
func (t *Tree) FindVacantRight() *Node {
	var target *Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || target != nil {
			return
		}
		if n.Right == nil {
			target = n
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.root)
	return target
}

// FindVacantLeft returns the first node in a DFS that has no left child.
// The search prefers descending right first.
func (t *Tree) FindVacantLeft() *Node {
	var target *Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || target != nil {
			return
		}
		if n.Left == nil {
			target = n
			return
		}
		walk(n.Right)
		walk(n.Left)
	}
	walk(t.root)
	return target
}

package asf

import (
	"slices"

	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
)

// BuildInitialTree constructs the starting tree for the engine's group,
// replacing any existing tree.
//
// The builder aims for a vertically stacked packing for vertical groups
// (horizontally arrayed for horizontal ones) and installs every
// self-symmetric module on the boundary branch so a common axis exists.
// Remaining representatives are chained alternating between stacking and
// spreading slots, sorted so that modules with a small minor dimension are
// placed first and leave a low contour behind them.
//
// Fails with an EMPTY_GROUP error when the group has no representatives.
func (e *Engine) BuildInitialTree() error {
	selfSym := e.selfSymmetricReps()
	var others []string
	for _, name := range e.reps {
		if !e.group.IsSelfSymmetric(name) {
			others = append(others, name)
		}
	}

	// Sort by the minor dimension for the group orientation so early
	// modules keep the contour low for the ones stacked after them.
	vertical := e.group.Type() == floorplan.Vertical
	slices.SortStableFunc(others, func(a, b string) int {
		if vertical {
			return e.modules[a].Height() - e.modules[b].Height()
		}
		return e.modules[a].Width() - e.modules[b].Width()
	})

	var rootName string
	switch {
	case len(others) > 0:
		rootName = others[0]
		others = others[1:]
	case len(selfSym) > 0:
		rootName = selfSym[0]
		selfSym = selfSym[1:]
	default:
		return errors.New(errors.ErrCodeEmptyGroup, "group %s has no modules to place", e.group.Name())
	}

	dir := e.boundaryDir()
	root := &Node{Name: rootName}
	e.tree.SetRoot(root)
	e.logger.Debug("initial tree root", "group", e.group.Name(), "module", rootName)

	// Self-symmetric modules form a chain along the boundary branch.
	curr := root
	for _, name := range selfSym {
		child := &Node{Name: name}
		if dir == BoundaryRight {
			curr.Right = child
		} else {
			curr.Left = child
		}
		curr = child
	}

	e.chainRemaining(curr, others, dir)

	if err := e.tree.Validate(e.reps); err != nil {
		return errors.Wrap(errors.ErrCodeStructuralInvalid, err, "initial tree invalid for group %s", e.group.Name())
	}
	if err := e.tree.ValidateBoundary(dir, e.selfSymmetricReps()); err != nil {
		return errors.Wrap(errors.ErrCodeBoundaryInvariant, err, "initial tree violates boundary invariant for group %s", e.group.Name())
	}
	return nil
}

// chainRemaining inserts the non-self-symmetric representatives. The first
// one is appended past the end of the boundary chain so the chain stays
// intact; after that, even-indexed modules extend the stack (boundary
// direction) and odd-indexed ones spread in the opposite direction. When
// the preferred slot under the cursor is taken, the first vacant slot of
// the same kind anywhere in the tree is used.
func (e *Engine) chainRemaining(curr *Node, others []string, dir BoundaryDir) {
	for i, name := range others {
		node := &Node{Name: name}
		stacking := i == 0 || i%2 == 0

		if i == 0 {
			tail := e.tree.boundaryTail(dir)
			attach(tail, node, dir == BoundaryRight)
			curr = node
			continue
		}

		attachRight := stacking == (dir == BoundaryRight)
		target := curr
		if occupied(target, attachRight) {
			if attachRight {
				target = e.tree.FindVacantRight()
			} else {
				target = e.tree.FindVacantLeft()
			}
		}
		if target == nil {
			// Every slot of that kind is taken, which cannot happen in a
			// binary tree with vacant leaves; fall back to the cursor.
			target = curr
		}
		attach(target, node, attachRight)
		curr = node
	}
}

func occupied(n *Node, right bool) bool {
	if right {
		return n.Right != nil
	}
	return n.Left != nil
}

func attach(parent, child *Node, right bool) {
	if right {
		parent.Right = child
	} else {
		parent.Left = child
	}
}

package asf

import (
	"math"

	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
)

// packTree assigns coordinates to every representative by walking the tree
// breadth-first against a fresh contour. The root is pinned at the origin;
// a left child packs to the right of its parent at the lowest admissible
// y, a right child packs directly above its parent at the same x.
func (e *Engine) packTree() error {
	e.contour.Reset()

	root := e.tree.Root()
	if root == nil {
		return errors.New(errors.ErrCodeEmptyGroup, "group %s has an empty tree", e.group.Name())
	}

	rootMod, err := e.module(root.Name)
	if err != nil {
		return err
	}
	rootMod.SetPosition(0, 0)
	e.contour.Insert(0, 0, rootMod.Width(), rootMod.Height())
	e.logger.Debug("placed root", "module", root.Name, "x", 0, "y", 0)

	queue := []*Node{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		parent, err := e.module(node.Name)
		if err != nil {
			return err
		}

		if node.Left != nil {
			child, err := e.module(node.Left.Name)
			if err != nil {
				return err
			}
			x, err := addCoord(parent.X(), parent.Width())
			if err != nil {
				return err
			}
			// Prefer the parent's y when nothing under the span rises above
			// it; aligned rows pack tighter and keep mirror halves joined.
			y := e.contour.MaxHeightOver(x, child.Width())
			if y <= parent.Y() {
				y = parent.Y()
			}
			if _, err := addCoord(y, child.Height()); err != nil {
				return err
			}
			child.SetPosition(x, y)
			e.contour.Insert(x, y, child.Width(), child.Height())
			e.logger.Debug("placed left child", "module", node.Left.Name, "x", x, "y", y)
			queue = append(queue, node.Left)
		}

		if node.Right != nil {
			child, err := e.module(node.Right.Name)
			if err != nil {
				return err
			}
			x := parent.X()
			y, err := addCoord(parent.Y(), parent.Height())
			if err != nil {
				return err
			}
			child.SetPosition(x, y)
			e.contour.Insert(x, y, child.Width(), child.Height())
			e.logger.Debug("placed right child", "module", node.Right.Name, "x", x, "y", y)
			queue = append(queue, node.Right)
		}
	}
	return nil
}

// module resolves a tree node's module record.
func (e *Engine) module(name string) (*floorplan.Module, error) {
	mod, ok := e.modules[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownModule, "tree references unknown module %q", name)
	}
	return mod, nil
}

// addCoord adds two coordinates, guarding against integer overflow.
func addCoord(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, errors.New(errors.ErrCodeCoordOverflow, "coordinate overflow at %d+%d", a, b)
	}
	return a + b, nil
}

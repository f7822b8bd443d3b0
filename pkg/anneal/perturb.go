package anneal

import (
	"math/rand/v2"

	"github.com/symplace/symplace/pkg/asf"
)

// perturb applies one random mutation to the engine's tree or modules.
// Returns false when no applicable mutation exists for the drawn op (for
// instance, a single-node tree cannot swap); the caller skips the
// iteration.
//
// Self-symmetric modules stay on the boundary branch by construction:
// swaps exchange two non-self modules or two self modules, and moves only
// relocate non-self leaves. A mutation that still lands in an infeasible
// shape is caught by the pack's validators.
func perturb(engine *asf.Engine, rng *rand.Rand) bool {
	switch rng.IntN(3) {
	case 0:
		return rotateRandom(engine, rng)
	case 1:
		return swapRandom(engine, rng)
	default:
		return moveRandom(engine, rng)
	}
}

// rotateRandom rotates a random pair representative.
func rotateRandom(engine *asf.Engine, rng *rand.Rand) bool {
	group := engine.Group()
	var candidates []string
	for _, p := range group.Pairs() {
		candidates = append(candidates, p.Rep)
	}
	if len(candidates) == 0 {
		return false
	}
	name := candidates[rng.IntN(len(candidates))]
	engine.Modules()[name].Rotate()
	return true
}

// swapRandom exchanges the modules held by two nodes of the same kind.
func swapRandom(engine *asf.Engine, rng *rand.Rand) bool {
	group := engine.Group()
	tree := engine.Tree()

	var selfNodes, otherNodes []*asf.Node
	for _, name := range tree.Preorder() {
		n := tree.Find(name)
		if group.IsSelfSymmetric(name) {
			selfNodes = append(selfNodes, n)
		} else {
			otherNodes = append(otherNodes, n)
		}
	}

	pool := otherNodes
	if len(pool) < 2 || (len(selfNodes) >= 2 && rng.IntN(2) == 0) {
		pool = selfNodes
	}
	if len(pool) < 2 {
		return false
	}
	i := rng.IntN(len(pool))
	j := rng.IntN(len(pool) - 1)
	if j >= i {
		j++
	}
	pool[i].Name, pool[j].Name = pool[j].Name, pool[i].Name
	return true
}

// moveRandom detaches a random non-self leaf and reattaches it at a random
// vacant slot.
func moveRandom(engine *asf.Engine, rng *rand.Rand) bool {
	group := engine.Group()
	tree := engine.Tree()
	root := tree.Root()
	if root == nil {
		return false
	}

	var leaves []*asf.Node
	var walk func(n *asf.Node)
	walk = func(n *asf.Node) {
		if n == nil {
			return
		}
		if n != root && n.Left == nil && n.Right == nil && !group.IsSelfSymmetric(n.Name) {
			leaves = append(leaves, n)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	if len(leaves) == 0 {
		return false
	}
	leaf := leaves[rng.IntN(len(leaves))]
	detach(root, leaf)

	// Collect vacant slots over the remaining tree.
	type slot struct {
		parent *asf.Node
		right  bool
	}
	var slots []slot
	var collect func(n *asf.Node)
	collect = func(n *asf.Node) {
		if n == nil {
			return
		}
		if n.Left == nil {
			slots = append(slots, slot{n, false})
		}
		if n.Right == nil {
			slots = append(slots, slot{n, true})
		}
		collect(n.Left)
		collect(n.Right)
	}
	collect(root)

	s := slots[rng.IntN(len(slots))]
	if s.right {
		s.parent.Right = leaf
	} else {
		s.parent.Left = leaf
	}
	return true
}

// detach removes the leaf from its parent's child link.
func detach(root, leaf *asf.Node) {
	var walk func(n *asf.Node)
	walk = func(n *asf.Node) {
		if n == nil {
			return
		}
		if n.Left == leaf {
			n.Left = nil
			return
		}
		if n.Right == leaf {
			n.Right = nil
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
}

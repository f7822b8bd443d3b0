package floorplan

import (
	"errors"
	"slices"
)

var (
	// ErrPairMember is returned by [SymmetryGroup.AddPair] when either name
	// is empty or both names are the same module.
	ErrPairMember = errors.New("symmetry pair must name two distinct modules")

	// ErrDuplicateMember is returned when a module is added to a group in
	// more than one role (pair member or self-symmetric).
	ErrDuplicateMember = errors.New("module already belongs to the group")
)

// SymmetryType selects the orientation of a group's mirror axis.
type SymmetryType int

const (
	// Vertical mirrors across a vertical line x = axis.
	Vertical SymmetryType = iota
	// Horizontal mirrors across a horizontal line y = axis.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (t SymmetryType) String() string {
	if t == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Pair names two modules that must be mirror images across the group axis.
// Rep is the representative stored in the placement tree; Sym is the partner
// whose position is derived by mirroring.
type Pair struct {
	Rep string
	Sym string
}

// SymmetryGroup collects the symmetry constraints for one set of modules:
// mirror pairs and self-symmetric modules sharing a common axis. The axis
// position is computed by the placement engine after packing.
type SymmetryGroup struct {
	name    string
	typ     SymmetryType
	pairs   []Pair
	selfSym []string
	axis    float64
	axisSet bool
}

// NewSymmetryGroup creates an empty group of the given type.
func NewSymmetryGroup(name string, typ SymmetryType) *SymmetryGroup {
	return &SymmetryGroup{name: name, typ: typ}
}

// Name returns the group's identifier.
func (g *SymmetryGroup) Name() string { return g.name }

// Type returns the orientation of the mirror axis.
func (g *SymmetryGroup) Type() SymmetryType { return g.typ }

// AddPair registers a mirror pair. The first module becomes the
// representative. Returns ErrPairMember for degenerate pairs and
// ErrDuplicateMember if either module already has a role in the group.
func (g *SymmetryGroup) AddPair(rep, sym string) error {
	if rep == "" || sym == "" || rep == sym {
		return ErrPairMember
	}
	if g.contains(rep) || g.contains(sym) {
		return ErrDuplicateMember
	}
	g.pairs = append(g.pairs, Pair{Rep: rep, Sym: sym})
	return nil
}

// AddSelfSymmetric registers a module that must straddle the axis.
// Returns ErrDuplicateMember if the module already has a role in the group.
func (g *SymmetryGroup) AddSelfSymmetric(name string) error {
	if g.contains(name) {
		return ErrDuplicateMember
	}
	g.selfSym = append(g.selfSym, name)
	return nil
}

func (g *SymmetryGroup) contains(name string) bool {
	for _, p := range g.pairs {
		if p.Rep == name || p.Sym == name {
			return true
		}
	}
	return slices.Contains(g.selfSym, name)
}

// Pairs returns the registered mirror pairs in insertion order.
func (g *SymmetryGroup) Pairs() []Pair { return slices.Clone(g.pairs) }

// SelfSymmetric returns the self-symmetric module names in insertion order.
func (g *SymmetryGroup) SelfSymmetric() []string { return slices.Clone(g.selfSym) }

// Representatives returns the modules the placement tree must contain:
// one per pair plus every self-symmetric module, in insertion order.
func (g *SymmetryGroup) Representatives() []string {
	reps := make([]string, 0, len(g.pairs)+len(g.selfSym))
	for _, p := range g.pairs {
		reps = append(reps, p.Rep)
	}
	reps = append(reps, g.selfSym...)
	return reps
}

// PartnerMap returns the representative-to-partner mapping for all pairs.
func (g *SymmetryGroup) PartnerMap() map[string]string {
	m := make(map[string]string, len(g.pairs))
	for _, p := range g.pairs {
		m[p.Rep] = p.Sym
	}
	return m
}

// Members returns every module name in the group: pair members and
// self-symmetric modules.
func (g *SymmetryGroup) Members() []string {
	names := make([]string, 0, 2*len(g.pairs)+len(g.selfSym))
	for _, p := range g.pairs {
		names = append(names, p.Rep, p.Sym)
	}
	names = append(names, g.selfSym...)
	return names
}

// IsSelfSymmetric reports whether the named module straddles the axis.
func (g *SymmetryGroup) IsSelfSymmetric(name string) bool {
	return slices.Contains(g.selfSym, name)
}

// SetAxisPosition records the axis computed by the placement engine.
func (g *SymmetryGroup) SetAxisPosition(axis float64) {
	g.axis = axis
	g.axisSet = true
}

// AxisPosition returns the recorded axis and whether one has been set.
func (g *SymmetryGroup) AxisPosition() (float64, bool) { return g.axis, g.axisSet }

// IsSymmetryIsland reports whether the group's placed modules form a single
// edge-connected region: every module must be reachable from every other
// through rectangles that share a boundary segment of positive length.
func (g *SymmetryGroup) IsSymmetryIsland(modules map[string]*Module) bool {
	names := g.Members()
	if len(names) <= 1 {
		return true
	}

	placed := make([]*Module, 0, len(names))
	for _, name := range names {
		m, ok := modules[name]
		if !ok {
			return false
		}
		placed = append(placed, m)
	}

	// BFS over edge-adjacency.
	visited := make(map[string]bool, len(placed))
	queue := []*Module{placed[0]}
	visited[placed[0].Name()] = true
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range placed {
			if visited[next.Name()] || !edgeAdjacent(curr, next) {
				continue
			}
			visited[next.Name()] = true
			queue = append(queue, next)
		}
	}
	return len(visited) == len(placed)
}

// edgeAdjacent reports whether a and b share a boundary edge of positive
// length (touching corners do not count).
func edgeAdjacent(a, b *Module) bool {
	// Vertical edge contact: one's right edge is the other's left edge,
	// with overlapping y-spans.
	if a.Right() == b.X() || b.Right() == a.X() {
		if min(a.Top(), b.Top()) > max(a.Y(), b.Y()) {
			return true
		}
	}
	// Horizontal edge contact.
	if a.Top() == b.Y() || b.Top() == a.Y() {
		if min(a.Right(), b.Right()) > max(a.X(), b.X()) {
			return true
		}
	}
	return false
}

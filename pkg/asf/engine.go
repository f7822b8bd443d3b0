package asf

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/observability"
)

// Engine packs one symmetry group. It owns the placement tree and the
// contour; module records are referenced, not owned, and their positions
// are overwritten on every pack.
//
// Engine is not safe for concurrent use. Separate engines over disjoint
// module tables may run in parallel.
type Engine struct {
	group   *floorplan.SymmetryGroup
	modules map[string]*floorplan.Module
	partner map[string]string
	reps    []string

	tree    *Tree
	contour *Contour

	axis    float64
	axisSet bool

	logger  *log.Logger
	lastErr error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Without it, logs are discarded.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine for the given group. Every module named by the
// group must be present in the module table; a missing module fails with
// an UNKNOWN_MODULE error.
func New(group *floorplan.SymmetryGroup, modules map[string]*floorplan.Module, opts ...Option) (*Engine, error) {
	e := &Engine{
		group:   group,
		modules: modules,
		partner: group.PartnerMap(),
		reps:    group.Representatives(),
		tree:    NewTree(nil),
		contour: NewContour(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, name := range group.Members() {
		if _, ok := modules[name]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownModule, "group %s references unknown module %q", group.Name(), name)
		}
	}
	return e, nil
}

// Tree returns the placement tree for external mutation between packs.
func (e *Engine) Tree() *Tree { return e.tree }

// Group returns the symmetry group the engine places.
func (e *Engine) Group() *floorplan.SymmetryGroup { return e.group }

// Modules returns the module table the engine places into. The table is
// shared, not copied; callers must not mutate it during a pack.
func (e *Engine) Modules() map[string]*floorplan.Module { return e.modules }

// Preorder returns the tree's module names in pre-order.
func (e *Engine) Preorder() []string { return e.tree.Preorder() }

// Inorder returns the tree's module names in in-order.
func (e *Engine) Inorder() []string { return e.tree.Inorder() }

// Axis returns the computed symmetry axis and whether one has been set.
func (e *Engine) Axis() (float64, bool) { return e.axis, e.axisSet }

// Err returns the error recorded by the most recent failed Pack, or nil.
func (e *Engine) Err() error { return e.lastErr }

// boundaryDir returns the branch direction self-symmetric modules must
// occupy for the engine's group type.
func (e *Engine) boundaryDir() BoundaryDir {
	if e.group.Type() == floorplan.Horizontal {
		return BoundaryLeft
	}
	return BoundaryRight
}

// Pack runs the full pipeline: tree validation, representative packing,
// compaction, axis derivation, symmetric projection, and validation.
//
// It returns false both for fatal faults (structural tree damage, unknown
// modules) and for rejected placements (overlap, symmetry violation,
// negative coordinates); Err distinguishes the two via errors.IsFatal.
// Outer optimizers treat false as a rejected perturbation.
func (e *Engine) Pack() bool {
	observability.Placement().OnPackStart(e.group.Name(), len(e.reps))
	e.lastErr = nil
	err := e.pack()
	observability.Placement().OnPackComplete(e.group.Name(), err)
	if err != nil {
		e.lastErr = err
		if errors.IsFatal(err) {
			e.logger.Error("pack failed", "group", e.group.Name(), "err", err)
		} else {
			e.logger.Debug("placement rejected", "group", e.group.Name(), "err", err)
		}
		return false
	}
	return true
}

func (e *Engine) pack() error {
	if err := e.tree.Validate(e.reps); err != nil {
		return errors.Wrap(errors.ErrCodeStructuralInvalid, err, "tree structure invalid for group %s", e.group.Name())
	}
	if err := e.tree.ValidateBoundary(e.boundaryDir(), e.selfSymmetricReps()); err != nil {
		return errors.Wrap(errors.ErrCodeBoundaryInvariant, err, "boundary invariant violated for group %s", e.group.Name())
	}

	e.logger.Debug("packing representatives", "group", e.group.Name(), "nodes", e.tree.Len())
	if err := e.packTree(); err != nil {
		return err
	}

	e.compactRepresentatives()
	e.computeAxis()
	e.project()

	if err := e.validatePlacement(); err != nil {
		return err
	}

	e.logger.Info("packed symmetry group",
		"group", e.group.Name(),
		"modules", len(e.group.Members()),
		"axis", e.axis)
	return nil
}

// selfSymmetricReps returns the group's self-symmetric names. All of them
// are representatives by definition.
func (e *Engine) selfSymmetricReps() []string { return e.group.SelfSymmetric() }

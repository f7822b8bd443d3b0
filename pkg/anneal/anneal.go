// Package anneal drives the placement engine through simulated annealing.
//
// Each iteration perturbs the engine's tree (rotating a representative,
// swapping two modules, or moving a leaf to a vacant slot), repacks, and
// accepts or rejects the candidate by the usual Metropolis criterion over
// bounding-box area. Packs that fail validation roll the tree back and
// count as invalid candidates, so the loop never leaves the engine on an
// infeasible tree.
//
// Runs are reproducible: all randomness comes from the seeded generator in
// Options.
package anneal

import (
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/observability"
)

// Default annealing parameters.
const (
	// DefaultIterations is the number of perturbations per run.
	DefaultIterations = 2000

	// DefaultInitialTemp is the starting temperature.
	DefaultInitialTemp = 1000.0

	// DefaultCooling is the geometric cooling factor applied per iteration.
	DefaultCooling = 0.995

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Options configures an annealing run.
type Options struct {
	Iterations  int
	InitialTemp float64
	Cooling     float64
	Seed        uint64

	// Logger receives progress output; nil discards it.
	Logger *log.Logger

	// Progress, when non-nil, is called every few hundred iterations with
	// the current iteration and best area. Used by interactive frontends.
	Progress func(iteration, bestArea int)
}

func (o *Options) setDefaults() {
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.InitialTemp == 0 {
		o.InitialTemp = DefaultInitialTemp
	}
	if o.Cooling == 0 {
		o.Cooling = DefaultCooling
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result summarizes an annealing run.
type Result struct {
	// Best is the best placement found, already applied to the module table.
	Best floorplan.Placement

	// BestArea is the bounding-box area of Best over the group's modules.
	BestArea int

	Iterations int
	Accepted   int
	Rejected   int
	Invalid    int
	Duration   time.Duration
}

// Run anneals the engine's tree. The engine must have a feasible tree
// already packed or packable; Run packs it once to establish the starting
// cost. On return the module table holds the best placement found.
func Run(engine *asf.Engine, opts Options) (*Result, error) {
	opts.setDefaults()
	group := engine.Group()
	observability.Anneal().OnAnnealStart(group.Name(), opts.Iterations)
	start := time.Now()

	if !engine.Pack() {
		return nil, engine.Err()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, 0))
	res := &Result{Iterations: opts.Iterations}

	cost := groupArea(engine)
	best := snapshot(engine)
	bestCost := cost
	temp := opts.InitialTemp

	opts.Logger.Info("annealing start",
		"group", group.Name(), "iterations", opts.Iterations, "area", cost)

	for i := 0; i < opts.Iterations; i++ {
		saved := cloneTree(engine.Tree().Root())
		savedRotations := rotationStates(engine)

		if !perturb(engine, rng) {
			restore(engine, saved, savedRotations)
			continue
		}

		if !engine.Pack() {
			restore(engine, saved, savedRotations)
			res.Invalid++
			continue
		}

		candidate := groupArea(engine)
		delta := float64(candidate - cost)
		if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
			cost = candidate
			res.Accepted++
			if candidate < bestCost {
				bestCost = candidate
				best = snapshot(engine)
			}
		} else {
			restore(engine, saved, savedRotations)
			res.Rejected++
		}

		temp *= opts.Cooling
		if (i+1)%200 == 0 {
			observability.Anneal().OnAnnealProgress(group.Name(), i+1, temp, bestCost)
			if opts.Progress != nil {
				opts.Progress(i+1, bestCost)
			}
			opts.Logger.Debug("annealing progress",
				"iteration", i+1, "temperature", temp, "best", bestCost)
		}
	}

	// Leave the table holding the best placement, with the group's axis
	// matching it rather than the last candidate's.
	if err := best.Apply(engine.Modules()); err != nil {
		return nil, err
	}
	for _, ax := range best.Groups {
		if ax.Group == group.Name() {
			group.SetAxisPosition(ax.Position)
		}
	}
	res.Best = best
	res.BestArea = bestCost
	res.Duration = time.Since(start)

	observability.Anneal().OnAnnealComplete(group.Name(), bestCost, res.Duration)
	opts.Logger.Info("annealing done",
		"group", group.Name(), "area", bestCost,
		"accepted", res.Accepted, "rejected", res.Rejected, "invalid", res.Invalid)
	return res, nil
}

// groupArea returns the bounding-box area over the engine's group members.
func groupArea(engine *asf.Engine) int {
	members := engine.Group().Members()
	table := engine.Modules()
	first := table[members[0]]
	minX, minY := first.X(), first.Y()
	maxX, maxY := first.Right(), first.Top()
	for _, name := range members[1:] {
		m := table[name]
		minX = min(minX, m.X())
		minY = min(minY, m.Y())
		maxX = max(maxX, m.Right())
		maxY = max(maxY, m.Top())
	}
	return (maxX - minX) * (maxY - minY)
}

// snapshot captures the group members' positions.
func snapshot(engine *asf.Engine) floorplan.Placement {
	members := make(map[string]*floorplan.Module)
	for _, name := range engine.Group().Members() {
		members[name] = engine.Modules()[name]
	}
	return floorplan.Snapshot(members, engine.Group())
}

// rotationStates records each group module's rotation flag so rejected
// rotation perturbations can be undone.
func rotationStates(engine *asf.Engine) map[string]bool {
	states := make(map[string]bool)
	for _, name := range engine.Group().Members() {
		states[name] = engine.Modules()[name].Rotated()
	}
	return states
}

func restore(engine *asf.Engine, root *asf.Node, rotations map[string]bool) {
	engine.Tree().SetRoot(root)
	for name, rotated := range rotations {
		engine.Modules()[name].SetRotation(rotated)
	}
}

// cloneTree deep-copies a tree so a rejected perturbation can be undone.
func cloneTree(n *asf.Node) *asf.Node {
	if n == nil {
		return nil
	}
	return &asf.Node{
		Name:  n.Name,
		Left:  cloneTree(n.Left),
		Right: cloneTree(n.Right),
	}
}

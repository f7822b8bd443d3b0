package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/symplace/symplace/pkg/anneal"
	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/cache"
	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/netlist"
	"github.com/symplace/symplace/pkg/render"
	"github.com/symplace/symplace/pkg/store"
)

// Runner encapsulates pipeline execution with caching and optional
// archiving. Both CLI and API use it to avoid duplicating the logic.
//
// The Runner is stateless except for its cache, store, and logger; it does
// not keep pipeline results. Concurrent Executes with different options
// are safe as long as they use different Design instances, which Execute
// guarantees by parsing per call.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // optional placement archive
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → place → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	design, source, err := r.parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Design = design
	result.NetlistHash = cache.Hash(source)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ModuleCount = len(design.Modules)
	result.Stats.GroupCount = len(design.Groups)

	opts.Logger.Info("parsed netlist",
		"modules", len(design.Modules),
		"groups", len(design.Groups),
		"duration", result.Stats.ParseTime)

	// Stage 2: Place
	placeStart := time.Now()
	engines, err := r.place(ctx, design, result, &opts)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	result.Placement = floorplan.Snapshot(design.Modules, design.Groups...)
	result.Stats.PlaceTime = time.Since(placeStart)

	opts.Logger.Info("placed design",
		"area", result.Placement.Area(),
		"cached", result.CacheInfo.PlacementHit,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	if err := r.renderArtifacts(ctx, result, engines, &opts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if r.Store != nil {
		if err := r.archive(ctx, result, &opts); err != nil {
			// Archiving is best-effort; a failed save must not fail the run.
			opts.Logger.Warn("archive failed", "run", result.RunID, "err", err)
		}
	}

	return result, nil
}

// parse loads the netlist from a path or the inline source.
func (r *Runner) parse(opts Options) (*netlist.Design, []byte, error) {
	source := []byte(opts.Netlist)
	if opts.NetlistPath != "" {
		data, err := os.ReadFile(opts.NetlistPath)
		if err != nil {
			return nil, nil, err
		}
		source = data
	}
	design, err := netlist.Parse(bytes.NewReader(source))
	if err != nil {
		return nil, nil, err
	}
	return design, source, nil
}

// place positions every module: each selected symmetry group is placed
// independently (from cache or by running the engine), groups are then
// laid out side by side, and unconstrained modules fill a row after them.
// Returns the engines of freshly placed groups for tree diagnostics.
func (r *Runner) place(ctx context.Context, design *netlist.Design, result *Result, opts *Options) (map[string]*asf.Engine, error) {
	groups, err := selectGroups(design, opts.Groups)
	if err != nil {
		return nil, err
	}

	engines := make(map[string]*asf.Engine)
	result.Stats.GroupAreas = make(map[string]int)
	allHit := len(groups) > 0
	offset := 0

	for _, group := range groups {
		key := r.Keyer.PlacementKey(result.NetlistHash, opts.PlacementKeyOpts(group.Name()))

		var placed floorplan.Placement
		hit := false
		if !opts.Refresh {
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				if p, err := floorplan.ReadPlacement(bytes.NewReader(data)); err == nil {
					placed = p
					hit = true
				}
			}
		}

		if !hit {
			allHit = false
			engine, err := r.placeGroup(group, design, opts)
			if err != nil {
				return nil, err
			}
			engines[group.Name()] = engine
			placed = snapshotGroup(group, design)
			if data, err := floorplan.MarshalPlacement(placed); err == nil {
				_ = r.Cache.Set(ctx, key, data, cache.TTLPlacement)
			}
		}

		if err := placed.Apply(design.Modules); err != nil {
			return nil, err
		}
		restoreAxis(group, placed)
		result.Stats.GroupAreas[group.Name()] = placed.Area()

		offset = shiftGroup(group, design, offset) + GroupSpacing
	}
	result.CacheInfo.PlacementHit = allHit

	placeUnconstrained(design, offset)
	return engines, nil
}

// placeGroup runs the engine for one group, annealing unless disabled.
func (r *Runner) placeGroup(group *floorplan.SymmetryGroup, design *netlist.Design, opts *Options) (*asf.Engine, error) {
	engine, err := asf.New(group, design.Modules, asf.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	if err := engine.BuildInitialTree(); err != nil {
		return nil, err
	}

	if opts.NoAnneal {
		if !engine.Pack() {
			return nil, engine.Err()
		}
		return engine, nil
	}

	res, err := anneal.Run(engine, anneal.Options{
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("group annealed",
		"group", group.Name(), "area", res.BestArea,
		"accepted", res.Accepted, "invalid", res.Invalid)
	return engine, nil
}

// selectGroups resolves the requested group names, or all groups when none
// are named.
func selectGroups(design *netlist.Design, names []string) ([]*floorplan.SymmetryGroup, error) {
	if len(names) == 0 {
		return design.Groups, nil
	}
	var out []*floorplan.SymmetryGroup
	for _, name := range names {
		g := design.Group(name)
		if g == nil {
			return nil, fmt.Errorf("unknown group %q", name)
		}
		out = append(out, g)
	}
	return out, nil
}

// snapshotGroup captures the placement of one group's modules.
func snapshotGroup(group *floorplan.SymmetryGroup, design *netlist.Design) floorplan.Placement {
	members := make(map[string]*floorplan.Module)
	for _, name := range group.Members() {
		members[name] = design.Modules[name]
	}
	return floorplan.Snapshot(members, group)
}

// restoreAxis copies the axis recorded in a placement back onto the group.
func restoreAxis(group *floorplan.SymmetryGroup, p floorplan.Placement) {
	for _, axis := range p.Groups {
		if axis.Group == group.Name() {
			group.SetAxisPosition(axis.Position)
			return
		}
	}
}

// shiftGroup translates a group's modules right by offset and returns the
// group's new right edge. Vertical axes shift along with their modules.
func shiftGroup(group *floorplan.SymmetryGroup, design *netlist.Design, offset int) int {
	maxRight := offset
	for _, name := range group.Members() {
		m := design.Modules[name]
		m.SetPosition(m.X()+offset, m.Y())
		maxRight = max(maxRight, m.Right())
	}
	if axis, ok := group.AxisPosition(); ok && group.Type() == floorplan.Vertical {
		group.SetAxisPosition(axis + float64(offset))
	}
	return maxRight
}

// placeUnconstrained lays modules that belong to no group in a row after
// the groups.
func placeUnconstrained(design *netlist.Design, offset int) {
	owned := make(map[string]bool)
	for _, g := range design.Groups {
		for _, name := range g.Members() {
			owned[name] = true
		}
	}
	x := offset
	for _, name := range design.ModuleNames() {
		if owned[name] {
			continue
		}
		m := design.Modules[name]
		m.SetPosition(x, 0)
		x = m.Right() + 1
	}
}

// renderArtifacts produces the requested output formats. JSON is the
// marshalled placement; SVG is cached by placement content; DOT and PNG
// depend on the engine trees and
// are only produced for groups placed in this run.
func (r *Runner) renderArtifacts(ctx context.Context, result *Result, engines map[string]*asf.Engine, opts *Options) error {
	placementData, err := floorplan.MarshalPlacement(result.Placement)
	if err != nil {
		return err
	}
	placementHash := cache.Hash(placementData)

	allHit := true
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			result.Artifacts[FormatJSON] = placementData

		case FormatSVG:
			key := r.Keyer.ArtifactKey(placementHash, cache.ArtifactKeyOpts{Format: format})
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				result.Artifacts[FormatSVG] = data
				continue
			}
			allHit = false
			svg := render.SVG(result.Placement, result.Design.Groups, render.SVGOptions{Labels: opts.Labels})
			result.Artifacts[FormatSVG] = svg
			_ = r.Cache.Set(ctx, key, svg, cache.TTLArtifact)

		case FormatDOT, FormatPNG:
			allHit = false
			dot, ok := r.treeDOT(engines, result.Design)
			if !ok {
				opts.Logger.Warn("tree diagnostics unavailable for cached placements", "format", format)
				continue
			}
			if format == FormatDOT {
				result.Artifacts[FormatDOT] = []byte(dot)
				continue
			}
			png, err := render.RenderDOTPNG(ctx, dot)
			if err != nil {
				return err
			}
			result.Artifacts[FormatPNG] = png
		}
	}
	result.CacheInfo.RenderHit = allHit
	return nil
}

// treeDOT renders the placement tree of the first freshly placed group.
func (r *Runner) treeDOT(engines map[string]*asf.Engine, design *netlist.Design) (string, bool) {
	for _, g := range design.Groups {
		if engine, ok := engines[g.Name()]; ok {
			return render.TreeDOT(engine.Tree(), g), true
		}
	}
	return "", false
}

// archive saves the run to the configured store.
func (r *Runner) archive(ctx context.Context, result *Result, opts *Options) error {
	iterations := opts.Iterations
	if opts.NoAnneal {
		iterations = 0
	}
	return r.Store.Save(ctx, &store.Record{
		ID:          result.RunID,
		NetlistHash: result.NetlistHash,
		Placement:   result.Placement,
		Area:        result.Placement.Area(),
		Iterations:  iterations,
		Seed:        opts.Seed,
		CreatedAt:   time.Now(),
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

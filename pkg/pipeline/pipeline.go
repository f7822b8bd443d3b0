// Package pipeline provides the core placement pipeline for symplace.
//
// This package implements the complete parse → place → render pipeline
// used by both the CLI and the HTTP API. Centralizing it keeps behavior
// consistent across entry points and gives both the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode and validate the TOML netlist
//  2. Place: run the symmetry-feasible placement engine per group,
//     annealed unless disabled, and lay the groups out side by side
//  3. Render: generate output artifacts (JSON, SVG, DOT, PNG)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{NetlistPath: "design.toml", Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/symplace/symplace/pkg/anneal"
	"github.com/symplace/symplace/pkg/cache"
	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/netlist"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultIterations is the annealing budget per symmetry group.
	DefaultIterations = anneal.DefaultIterations

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = anneal.DefaultSeed

	// GroupSpacing separates independently placed groups in the combined
	// floorplan.
	GroupSpacing = 2
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format %q (must be one of: json, svg, dot, png)", f)
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of NetlistPath or Netlist must be set.
	NetlistPath string `json:"netlist_path,omitempty"`
	Netlist     string `json:"netlist,omitempty"` // inline TOML source

	// Place options
	Groups     []string `json:"groups,omitempty"` // subset of groups; empty = all
	Iterations int      `json:"iterations,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	NoAnneal   bool     `json:"no_anneal,omitempty"` // single deterministic pack per group
	Refresh    bool     `json:"refresh,omitempty"`   // bypass the placement cache

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.NetlistPath == "" && o.Netlist == "" {
		return errors.New(errors.ErrCodeInvalidInput, "netlist path or inline netlist is required")
	}
	if o.NetlistPath != "" && o.Netlist != "" {
		return errors.New(errors.ErrCodeInvalidInput, "netlist path and inline netlist are mutually exclusive")
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// PlacementKeyOpts returns cache key options for the placement stage.
func (o *Options) PlacementKeyOpts(group string) cache.PlacementKeyOpts {
	iterations := o.Iterations
	if o.NoAnneal {
		iterations = 0
	}
	return cache.PlacementKeyOpts{
		Group:      group,
		Iterations: iterations,
		Seed:       o.Seed,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Design is the parsed netlist.
	Design *netlist.Design

	// NetlistHash is the content hash of the netlist source.
	NetlistHash string

	// Placement is the combined placement over all modules.
	Placement floorplan.Placement

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount int
	GroupCount  int
	// GroupAreas maps each placed group to its bounding-box area.
	GroupAreas map[string]int

	ParseTime  time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlacementHit bool // Whether all group placements came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

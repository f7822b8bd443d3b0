package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/symplace/symplace/pkg/cache"
	"github.com/symplace/symplace/pkg/observability"
	"github.com/symplace/symplace/pkg/pipeline"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	output     string   // output base path (defaults to the netlist name)
	formats    []string // output formats: json, svg, dot, png
	groups     []string // symmetry groups to place (default: all)
	iterations int      // annealing budget per group
	seed       uint64   // random seed
	noAnneal   bool     // single deterministic pack per group
	noCache    bool     // disable the placement cache
	refresh    bool     // recompute even on a cache hit
	labels     bool     // draw module names in SVG output
	progressUI bool     // show the annealing progress view
}

// newPlaceCmd creates the place command that runs the full placement
// pipeline on a netlist.
func newPlaceCmd() *cobra.Command {
	var formatsStr string
	opts := placeOpts{
		iterations: pipeline.DefaultIterations,
		labels:     true,
	}

	cmd := &cobra.Command{
		Use:   "place [netlist.toml]",
		Short: "Place a netlist under its symmetry constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runPlace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: netlist name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, dot, png (comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.groups, "group", "g", nil, "symmetry group(s) to place (default: all)")
	cmd.Flags().IntVar(&opts.iterations, "iterations", opts.iterations, "annealing iterations per group")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().BoolVar(&opts.noAnneal, "no-anneal", false, "skip annealing; single deterministic pack")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the placement cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw module names in SVG output")
	cmd.Flags().BoolVar(&opts.progressUI, "progress", false, "show annealing progress")

	return cmd
}

func runPlace(ctx context.Context, path string, opts *placeOpts) error {
	logger := loggerFromContext(ctx)

	c, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	var stopUI func()
	if opts.progressUI && !opts.noAnneal {
		stopUI = startAnnealUI(opts.iterations)
	} else {
		sp := newSpinner(ctx, "placing modules")
		sp.Start()
		stopUI = sp.Stop
	}

	track := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		NetlistPath: path,
		Groups:      opts.groups,
		Iterations:  opts.iterations,
		Seed:        opts.seed,
		NoAnneal:    opts.noAnneal,
		Refresh:     opts.refresh,
		Formats:     opts.formats,
		Labels:      opts.labels,
		Logger:      logger,
	})
	stopUI()
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Placed %d modules", result.Stats.ModuleCount))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	printSuccess("Placed %s", filepath.Base(path))
	printStats(result.Stats.ModuleCount, result.Stats.GroupCount,
		result.Placement.Area(), result.CacheInfo.PlacementHit)
	for _, axis := range result.Placement.Groups {
		printKeyValue(axis.Group, fmt.Sprintf("%s axis at %.1f", axis.Type, axis.Position))
	}

	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			printWarning("no %s output produced", format)
			continue
		}
		out := base + "." + format
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// startAnnealUI runs the bubbletea progress view fed by annealing hooks.
// The returned stop function tears the view down and resets all hooks to
// their no-op defaults.
func startAnnealUI(total int) func() {
	program := newAnnealProgram()
	observability.SetAnnealHooks(&uiAnnealHooks{program: program, total: total})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = program.Run()
	}()
	return func() {
		program.Send(annealDoneMsg{})
		<-done
		observability.Reset()
	}
}

// uiAnnealHooks forwards annealing progress into the bubbletea program.
type uiAnnealHooks struct {
	observability.NoopAnnealHooks
	program *tea.Program
	total   int
}

func (h *uiAnnealHooks) OnAnnealProgress(group string, iteration int, _ float64, bestArea int) {
	h.program.Send(annealProgressMsg{
		group:     group,
		iteration: iteration,
		total:     h.total,
		bestArea:  bestArea,
	})
}

// parseFormats splits a comma-separated format list, defaulting to json.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// openCache opens the user-level file cache, or a null cache when
// disabled.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

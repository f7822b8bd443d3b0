package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string  // output file path
	scale  float64 // SVG units per placement unit
	labels bool    // draw module names
}

// newRenderCmd creates the render command that turns a stored placement
// JSON back into an SVG drawing.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{scale: 10, labels: true}

	cmd := &cobra.Command{
		Use:   "render [placement.json]",
		Short: "Render a stored placement to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: placement name with .svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG units per placement unit")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw module names")

	return cmd
}

func runRender(path string, opts *renderOpts) error {
	p, err := floorplan.ReadPlacementFile(path)
	if err != nil {
		return err
	}

	svg := render.SVG(p, nil, render.SVGOptions{Scale: opts.scale, Labels: opts.labels})

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	}
	if err := os.WriteFile(out, svg, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %d blocks", len(p.Blocks))
	printFile(out)
	return nil
}

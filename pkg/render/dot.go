package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/floorplan"
)

// TreeDOT converts a placement tree to Graphviz DOT. Left edges are
// labeled L (packs to the right of the parent), right edges R (packs
// above). Self-symmetric modules draw dashed so boundary-branch damage is
// visible at a glance.
func TreeDOT(tree *asf.Tree, group *floorplan.SymmetryGroup) string {
	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	var walk func(n *asf.Node)
	walk = func(n *asf.Node) {
		if n == nil {
			return
		}
		if group != nil && group.IsSelfSymmetric(n.Name) {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=%q];\n", n.Name, fillSelf)
		} else {
			fmt.Fprintf(&buf, "  %q;\n", n.Name)
		}
		if n.Left != nil {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"L\"];\n", n.Name, n.Left.Name)
		}
		if n.Right != nil {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"R\"];\n", n.Name, n.Right.Name)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(tree.Root())

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderDOTPNG renders a DOT graph to PNG using Graphviz.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Package render turns generated networks into visual outputs.
//
// # Overview
//
// Networks are spatial: every node carries coordinates, so diagrams pin
// nodes at their true positions instead of letting a layout engine place
// them. The pipeline is DOT source first, raster second:
//
//	dot := render.ToDOT(net, render.Options{})
//	svg, err := render.SVG(ctx, dot)
//	png, err := render.PNG(ctx, dot)
//
// The generated DOT can also be saved as-is and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, with the neato engine so that pinned positions are honored.
package render

import (
	"bytes"
	"fmt"

	"github.com/poregraph/poregraph/pkg/network"
)

// DefaultScale maps one coordinate unit to this many Graphviz points.
// Generated domains are often unit-sized, which would collapse to a few
// pixels without scaling.
const DefaultScale = 200.0

// Options configures diagram generation.
type Options struct {
	// Scale multiplies coordinates on the way into DOT. Zero selects
	// DefaultScale.
	Scale float64

	// Labeled prints node indices inside the markers. Off by default;
	// point markers read better on dense networks.
	Labeled bool
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return o
}

// ToDOT converts a network to Graphviz DOT source. Nodes are pinned at
// their X/Y coordinates (the Z component is dropped; 2D domains carry
// Z = 0 anyway), so the neato engine reproduces the spatial structure
// instead of inventing a layout.
func ToDOT(n *network.Network, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph network {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  edge [color=\"#444444\"];\n")
	if opts.Labeled {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, fixedsize=true, width=0.3];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.08, color=\"#1a1a1a\"];\n")
	}
	buf.WriteString("\n")

	for i, p := range n.Coords {
		if opts.Labeled {
			fmt.Fprintf(&buf, "  n%d [label=\"%d\", pos=\"%g,%g!\"];\n", i, i, p[0]*opts.Scale, p[1]*opts.Scale)
		} else {
			fmt.Fprintf(&buf, "  n%d [pos=\"%g,%g!\"];\n", i, p[0]*opts.Scale, p[1]*opts.Scale)
		}
	}

	buf.WriteString("\n")
	for _, e := range n.Conns {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

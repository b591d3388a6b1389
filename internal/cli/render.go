package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poregraph/poregraph/pkg/cache"
	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/observability"
	"github.com/poregraph/poregraph/pkg/render"
)

// Supported render formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (extension chosen by format when empty)
	format  string  // output format: svg, png, dot
	scale   float64 // coordinate-to-point scale factor
	labeled bool    // print node indices inside the markers
	noCache bool    // disable the artifact cache
}

// renderCommand creates the render command for turning network documents
// into diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render INPUT",
		Short: "Render a network document as a diagram",
		Long: `Render reads a network document (as produced by generate) and draws
it with Graphviz. Nodes are pinned at their true coordinates, so the
diagram reproduces the spatial structure of the network.

Rendered artifacts are cached by content: re-rendering an unchanged
network with the same options is instant.`,
		Example: `  poregraph render network.json -o network.svg
  poregraph render network.json --format png
  poregraph render network.json --format dot -o network.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, png, dot")
	cmd.Flags().Float64Var(&opts.scale, "scale", render.DefaultScale, "coordinate scale factor")
	cmd.Flags().BoolVar(&opts.labeled, "labeled", false, "print node indices inside the markers")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	switch opts.format {
	case formatSVG, formatPNG, formatDOT:
	default:
		return fmt.Errorf("unsupported format %q (want svg, png, or dot)", opts.format)
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open network document: %w", err)
	}
	net, err := network.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}

	prog := newProgress(c.Logger)
	artifact, cached, err := c.renderArtifact(ctx, net, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d nodes and %d edges as %s",
		net.NodeCount(), net.EdgeCount(), opts.format))

	if err := os.WriteFile(output, artifact, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	printSuccess("Rendered %s", opts.format)
	printStats(net.NodeCount(), net.EdgeCount(), cached)
	printFile(output)
	return nil
}

// renderArtifact produces the requested artifact, consulting the artifact
// cache first. DOT output is cheap and never cached.
func (c *CLI) renderArtifact(ctx context.Context, net *network.Network, opts *renderOpts) ([]byte, bool, error) {
	dot := render.ToDOT(net, render.Options{Scale: opts.scale, Labeled: opts.labeled})
	if opts.format == formatDOT {
		return []byte(dot), false, nil
	}

	ch, err := newCache(opts.noCache)
	if err != nil {
		ch = cache.NewNullCache()
	}
	defer ch.Close()

	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{
		Format: opts.format,
	})

	if data, hit, err := ch.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	var artifact []byte
	switch opts.format {
	case formatSVG:
		artifact, err = render.SVG(ctx, dot)
	case formatPNG:
		artifact, err = render.PNG(ctx, dot)
	}
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.format, err)
	}

	if err := ch.Set(ctx, key, artifact, cache.TTLArtifact); err != nil {
		c.Logger.Warn("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
	}
	return artifact, false, nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/observability"
	"github.com/poregraph/poregraph/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	count     int     // number of points to generate
	shape     string  // comma-separated domain extents, e.g. "1,1,0.5"
	seed      uint64  // point generation seed
	points    string  // JSON file with explicit coordinate rows
	epsilon   float64 // Gabriel predicate tolerance
	workers   int     // filter parallelism (0 = GOMAXPROCS)
	nodeLabel string  // node collection label
	edgeLabel string  // edge collection label
	output    string  // output file ("-" for stdout)
	recipe    string  // TOML recipe file
	noCache   bool    // disable the result cache
	refresh   bool    // bypass the cache for this run
}

// generateCommand creates the generate command, the main entry point of the
// pipeline: points in, Gabriel network out.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Gabriel network from a point set",
		Long: `Generate builds a spatial network from points.

Points come from one of two sources:
  --count with --shape   draw N uniform random points inside the domain
  --points FILE          load explicit coordinate rows from a JSON file

A zero extent in --shape collapses that axis, producing a planar network
embedded in 3D (e.g. --shape 1,1,0 is a 2D unit square).

Results are cached by content: repeating a run with identical inputs is
instant. Use --refresh to force recomputation or --no-cache to disable
caching entirely.`,
		Example: `  poregraph generate --count 500 --shape 1,1,1 -o network.json
  poregraph generate --count 200 --shape 1,1,0 --epsilon 1e-6
  poregraph generate --points coords.json --node-label pore --edge-label throat
  poregraph generate --recipe sandstone.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of points to generate")
	cmd.Flags().StringVarP(&opts.shape, "shape", "s", "", "domain extents, comma-separated (0 collapses an axis)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed for point generation")
	cmd.Flags().StringVarP(&opts.points, "points", "p", "", "JSON file with coordinate rows")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", pipeline.DefaultEpsilon, "Gabriel predicate tolerance")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "filter worker goroutines (0 = all CPUs)")
	cmd.Flags().StringVar(&opts.nodeLabel, "node-label", network.DefaultNodeLabel, "node collection label in the output")
	cmd.Flags().StringVar(&opts.edgeLabel, "edge-label", network.DefaultEdgeLabel, "edge collection label in the output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "network.json", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.recipe, "recipe", "r", "", "TOML recipe file with generation parameters")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	if opts.recipe != "" {
		recipe, err := loadRecipe(opts.recipe)
		if err != nil {
			return err
		}
		recipe.apply(cmd, opts)
	}

	pipeOpts, err := opts.toPipelineOptions()
	if err != nil {
		return err
	}
	pipeOpts.Logger = c.Logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	prog := newProgress(c.Logger)
	spin := startSpinner(cmd.Context(), os.Stderr, "Generating network...")
	observability.SetGenerationHooks(stageHooks{spin: spin})
	result, err := runner.Execute(cmd.Context(), pipeOpts)
	observability.SetGenerationHooks(nil)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d nodes and %d edges",
		result.Stats.Nodes, result.Stats.RetainedEdges))

	if err := writeNetwork(result.Network, opts.output); err != nil {
		return err
	}

	printSuccess("Generated network")
	printStats(result.Stats.Nodes, result.Stats.RetainedEdges, result.CacheInfo.NetworkHit)
	if !result.CacheInfo.NetworkHit && result.Stats.CandidateEdges > 0 {
		printDetail("Retained %d of %d candidate edges", result.Stats.RetainedEdges, result.Stats.CandidateEdges)
	}
	if opts.output != "-" {
		printFile(opts.output)
		printNewline()
		printNextStep("Render it", fmt.Sprintf("poregraph render %s -o network.svg", opts.output))
	}
	return nil
}

// toPipelineOptions converts flags to pipeline options, loading the points
// file if one was given.
func (o *generateOpts) toPipelineOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Count:     o.count,
		Seed:      o.seed,
		Epsilon:   o.epsilon,
		Workers:   o.workers,
		NodeLabel: o.nodeLabel,
		EdgeLabel: o.edgeLabel,
		Refresh:   o.refresh,
	}

	if o.shape != "" {
		shape, err := parseShape(o.shape)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Shape = shape
	}

	if o.points != "" {
		rows, err := loadPoints(o.points)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Points = rows
	}

	return opts, nil
}

// parseShape parses comma-separated extents into a shape slice.
func parseShape(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	shape := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shape component %q: %w", part, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("shape component %q is negative", part)
		}
		shape[i] = v
	}
	return shape, nil
}

// loadPoints reads coordinate rows from a JSON file.
func loadPoints(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read points file: %w", err)
	}
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse points file %s: %w", path, err)
	}
	return rows, nil
}

// writeNetwork writes the network document to path, or stdout for "-".
func writeNetwork(n *network.Network, path string) error {
	if path == "-" {
		return network.Write(n, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if err := network.Write(n, f); err != nil {
		return err
	}
	return f.Close()
}

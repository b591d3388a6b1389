package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Recipe is a TOML description of a generation run, so that parameter sets
// can live next to the data they produced:
//
//	# sandstone.toml
//	count   = 500
//	shape   = [1.0, 1.0, 0.5]
//	seed    = 7
//	epsilon = 1e-3
//
//	node_label = "pore"
//	edge_label = "throat"
//	output     = "sandstone.json"
//
// Flags given on the command line override recipe values.
type Recipe struct {
	Count     int       `toml:"count"`
	Shape     []float64 `toml:"shape"`
	Seed      uint64    `toml:"seed"`
	Points    string    `toml:"points"`
	Epsilon   float64   `toml:"epsilon"`
	Workers   int       `toml:"workers"`
	NodeLabel string    `toml:"node_label"`
	EdgeLabel string    `toml:"edge_label"`
	Output    string    `toml:"output"`
}

// loadRecipe reads and decodes a TOML recipe file. Unknown keys are
// rejected to catch typos.
func loadRecipe(path string) (*Recipe, error) {
	var r Recipe
	meta, err := toml.DecodeFile(path, &r)
	if err != nil {
		return nil, fmt.Errorf("load recipe %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("recipe %s has unknown keys: %v", path, undecoded)
	}
	return &r, nil
}

// apply copies recipe values into opts for every flag the user did not set
// explicitly on the command line.
func (r *Recipe) apply(cmd *cobra.Command, opts *generateOpts) {
	flags := cmd.Flags()

	if !flags.Changed("count") && r.Count > 0 {
		opts.count = r.Count
	}
	if !flags.Changed("shape") && len(r.Shape) > 0 {
		opts.shape = formatShape(r.Shape)
	}
	if !flags.Changed("seed") && r.Seed != 0 {
		opts.seed = r.Seed
	}
	if !flags.Changed("points") && r.Points != "" {
		opts.points = r.Points
	}
	if !flags.Changed("epsilon") && r.Epsilon != 0 {
		opts.epsilon = r.Epsilon
	}
	if !flags.Changed("workers") && r.Workers != 0 {
		opts.workers = r.Workers
	}
	if !flags.Changed("node-label") && r.NodeLabel != "" {
		opts.nodeLabel = r.NodeLabel
	}
	if !flags.Changed("edge-label") && r.EdgeLabel != "" {
		opts.edgeLabel = r.EdgeLabel
	}
	if !flags.Changed("output") && r.Output != "" {
		opts.output = r.Output
	}
}

// formatShape renders a shape slice back into the comma-separated flag form.
func formatShape(shape []float64) string {
	out := ""
	for i, v := range shape {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%g", v)
	}
	return out
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecipe(t *testing.T) {
	path := writeRecipe(t, `
count   = 500
shape   = [1.0, 1.0, 0.5]
seed    = 7
epsilon = 1e-6

node_label = "pore"
edge_label = "throat"
output     = "sandstone.json"
`)

	r, err := loadRecipe(path)
	if err != nil {
		t.Fatalf("loadRecipe: %v", err)
	}
	if r.Count != 500 || r.Seed != 7 || r.Epsilon != 1e-6 {
		t.Errorf("recipe = %+v", r)
	}
	if len(r.Shape) != 3 || r.Shape[2] != 0.5 {
		t.Errorf("shape = %v", r.Shape)
	}
	if r.NodeLabel != "pore" || r.EdgeLabel != "throat" || r.Output != "sandstone.json" {
		t.Errorf("recipe = %+v", r)
	}
}

func TestLoadRecipeRejectsUnknownKeys(t *testing.T) {
	path := writeRecipe(t, `
count = 10
shappe = [1.0, 1.0]
`)

	if _, err := loadRecipe(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRecipeApplyRespectsFlagPrecedence(t *testing.T) {
	c := testCLI()
	cmd := c.generateCommand()
	if err := cmd.Flags().Set("count", "99"); err != nil {
		t.Fatal(err)
	}

	opts := &generateOpts{count: 99, output: "network.json"}
	r := &Recipe{Count: 500, Shape: []float64{1, 1}, Output: "recipe.json"}
	r.apply(cmd, opts)

	if opts.count != 99 {
		t.Errorf("count = %d, explicit flag should win", opts.count)
	}
	if opts.shape != "1,1" {
		t.Errorf("shape = %q, recipe should fill unset flags", opts.shape)
	}
	if opts.output != "recipe.json" {
		t.Errorf("output = %q, recipe should fill unset flags", opts.output)
	}
}

func TestFormatShape(t *testing.T) {
	if got := formatShape([]float64{1, 1, 0.5}); got != "1,1,0.5" {
		t.Errorf("formatShape = %q", got)
	}
}

func TestGenerateWithRecipeEndToEnd(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")

	recipe := writeRecipe(t, `
count = 25
shape = [1.0, 1.0]
seed  = 11
`)

	root := testCLI().RootCommand()
	root.SetArgs([]string{"generate", "--recipe", recipe, "-o", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

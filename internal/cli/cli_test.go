package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestCacheDirDefaultsToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir = %q, should be under home %q", dir, home)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir = %q, should end with %q", dir, appName)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"generate", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseShape(t *testing.T) {
	shape, err := parseShape("1,2.5,0")
	if err != nil {
		t.Fatalf("parseShape: %v", err)
	}
	if len(shape) != 3 || shape[0] != 1 || shape[1] != 2.5 || shape[2] != 0 {
		t.Errorf("shape = %v", shape)
	}

	if _, err := parseShape("1,abc"); err == nil {
		t.Error("expected error for non-numeric component")
	}
	if _, err := parseShape("1,-2"); err == nil {
		t.Error("expected error for negative extent")
	}
}

func TestLoadPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	if err := os.WriteFile(path, []byte(`[[0,0],[1,0],[0,1]]`), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := loadPoints(path)
	if err != nil {
		t.Fatalf("loadPoints: %v", err)
	}
	if len(rows) != 3 || len(rows[0]) != 2 {
		t.Errorf("rows = %v", rows)
	}

	if _, err := loadPoints(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGenerateCommandEndToEnd(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "network.json")

	root := testCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--count", "30", "--shape", "1,1", "--seed", "5", "-o", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "node.coords") || !strings.Contains(string(data), "edge.conns") {
		t.Errorf("unexpected document: %s", data)
	}
}

func TestGenerateCommandCustomLabels(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "network.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"generate", "-n", "20", "-s", "1,1",
		"--node-label", "pore", "--edge-label", "throat", "-o", out, "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "pore.coords") || !strings.Contains(string(data), "throat.conns") {
		t.Errorf("labels not applied: %s", data)
	}
}

func TestGenerateCommandRejectsMissingSource(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := testCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate"})

	if err := root.Execute(); err == nil {
		t.Error("expected error without a point source")
	}
}

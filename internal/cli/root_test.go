package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const treeJSON = `{
  "name": "root",
  "children": [
    {"name": "B", "children": [
      {"name": "b1", "value": 40, "description": "first"},
      {"name": "b2", "value": 30}
    ]},
    {"name": "A", "value": 30, "categoria": "Energy"}
  ]
}`

// captureOutput redirects status output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// writeFixtures writes the tree and a cache-less config into a temp dir.
func writeFixtures(t *testing.T) (tree, config string) {
	t.Helper()
	dir := t.TempDir()
	tree = filepath.Join(dir, "tree.json")
	config = filepath.Join(dir, "config.toml")
	if err := os.WriteFile(tree, []byte(treeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(config, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return tree, config
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	captureOutput(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	sort.Strings(got)

	want := []string{"cache", "completion", "explore", "frames", "layout", "render", "serve"}
	for _, name := range want {
		if !contains(got, name) {
			t.Errorf("missing subcommand %q in %v", name, got)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root should register --config")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestRenderCommand(t *testing.T) {
	tree, config := writeFixtures(t)
	dir := filepath.Dir(tree)

	if err := execute(t, "--config", config, "render", tree, "-f", "svg,json", "--focus", "B"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "tree.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<svg")) {
		t.Errorf("tree.svg does not start with <svg: %.40s", svg)
	}

	scene, err := os.ReadFile(filepath.Join(dir, "tree.chart.json"))
	if err != nil {
		t.Fatalf("read scene: %v", err)
	}
	if !json.Valid(scene) {
		t.Errorf("tree.chart.json is not valid JSON: %.80s", scene)
	}

	input, err := os.ReadFile(tree)
	if err != nil {
		t.Fatal(err)
	}
	if string(input) != treeJSON {
		t.Error("render must not overwrite its input")
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	tree, config := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "nested", "chart.svg")

	if err := execute(t, "--config", config, "render", tree, "-o", outPath, "--size", "600"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(svg), `viewBox="-300 -300 600 600"`) {
		t.Errorf("svg should use the requested size, got %.200s", svg)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tree, config := writeFixtures(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad format", []string{"render", tree, "-f", "gif"}},
		{"dot for sunburst", []string{"render", tree, "-f", "dot"}},
		{"unknown focus", []string{"render", tree, "--focus", "B/zzz"}},
		{"leaf focus", []string{"render", tree, "--focus", "A"}},
		{"negative size", []string{"render", tree, "--size", "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", config}, tt.args...)
			if err := execute(t, args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	tree, config := writeFixtures(t)

	if err := execute(t, "--config", config, "layout", tree); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(tree), "tree.layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("layout is not valid JSON: %.80s", data)
	}
}

func TestFramesCommand(t *testing.T) {
	tree, config := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "frames.json")

	err := execute(t, "--config", config, "frames", tree,
		"--click", "B", "--click", "",
		"--fps", "10", "--duration", "200ms", "--easing", "linear",
		"-o", outPath)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	var seq pipeline.FrameSequence
	if err := json.Unmarshal(data, &seq); err != nil {
		t.Fatalf("decode frames: %v", err)
	}
	if len(seq.Clicks) != 2 {
		t.Fatalf("clicks = %d, want 2", len(seq.Clicks))
	}
	for i, c := range seq.Clicks {
		if !c.Clicked {
			t.Errorf("click %d (%q) was refused", i, c.Path)
		}
	}
	last := seq.Frames[len(seq.Frames)-1].Scene
	if !last.Done || last.Focus != 0 {
		t.Errorf("last frame focus=%d done=%v, want settled on the root", last.Focus, last.Done)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	tree, _ := writeFixtures(t)
	if err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "layout", tree); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

func init() {
	color.NoColor = true
}

// run executes the root command against an isolated config path.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	return runWithConfig(t, cfg, args...)
}

func runWithConfig(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config", cfg))
	err := root.Execute()
	return out.String(), err
}

func TestSnapshotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if _, err := run(t, "snapshot", "--format", "json", "--frames", "5", "--seed", "3", "--out", path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap snapshotExport
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Nodes) != 50 {
		t.Errorf("expected 50 nodes, got %d", len(snap.Nodes))
	}
	if snap.Frame != 5 || snap.Stats.Frame != 5 {
		t.Errorf("expected frame 5, got %d/%d", snap.Frame, snap.Stats.Frame)
	}
	for i, n := range snap.Nodes {
		if n.Pos.X < 0 || n.Pos.X > float64(snap.Width) || n.Pos.Y < 0 || n.Pos.Y > float64(snap.Height) {
			t.Errorf("node %d out of bounds: %+v", i, n.Pos)
		}
		if n.Scale < 1 || n.Scale > 2 {
			t.Errorf("node %d scale out of range: %f", i, n.Scale)
		}
	}
	if len(snap.Edges) != snap.Stats.Edges {
		t.Errorf("edge count mismatch: %d vs %d", len(snap.Edges), snap.Stats.Edges)
	}
}

func TestSnapshotDeterministicWithSeed(t *testing.T) {
	first, err := run(t, "snapshot", "--format", "svg", "--frames", "30", "--seed", "11", "--out", "-")
	if err != nil {
		t.Fatal(err)
	}
	second, err := run(t, "snapshot", "--format", "svg", "--frames", "30", "--seed", "11", "--out", "-")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected identical output for the same seed")
	}
	if !strings.Contains(first, "<svg") {
		t.Errorf("expected svg output, got %.100s", first)
	}
}

func TestSnapshotPNGFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if _, err := run(t, "snapshot", "--frames", "2", "--width", "64", "--height", "32", "--seed", "1", "--out", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected a png file")
	}
}

func TestSnapshotRejects(t *testing.T) {
	if _, err := run(t, "snapshot", "--format", "png", "--copy", "--out", "-"); err == nil {
		t.Error("expected --copy with png to fail")
	}
	if _, err := run(t, "snapshot", "--format", "gif", "--out", "-"); err == nil {
		t.Error("expected unknown format to fail")
	}
	if _, err := run(t, "snapshot", "--nodes", "-3", "--out", "-"); err == nil {
		t.Error("expected invalid node count to fail")
	}
}

func TestStatsJSON(t *testing.T) {
	out, err := run(t, "stats", "--json", "--frames", "10", "--nodes", "12", "--seed", "5")
	if err != nil {
		t.Fatal(err)
	}
	var st particles.Stats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if st.Nodes != 12 || st.Frame != 10 {
		t.Errorf("expected 12 nodes at frame 10, got %+v", st)
	}
	if st.Components < 1 || st.Components > 12 {
		t.Errorf("unexpected component count %d", st.Components)
	}
}

func TestStatsTable(t *testing.T) {
	out, err := run(t, "stats", "--frames", "3", "--seed", "5")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mean degree", "largest cluster", "max scale"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table output", want)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := runWithConfig(t, cfg, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg); err != nil {
		t.Fatalf("expected config written: %v", err)
	}
	if _, err := runWithConfig(t, cfg, "config", "init"); err == nil {
		t.Error("expected init to refuse overwriting")
	}
	if _, err := runWithConfig(t, cfg, "config", "init", "--force"); err != nil {
		t.Errorf("expected --force to overwrite: %v", err)
	}

	out, err := runWithConfig(t, cfg, "config", "show", "--nodes", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[renderer]") || !strings.Contains(out, "nodes = 7") {
		t.Errorf("unexpected config show output:\n%s", out)
	}

	out, err = runWithConfig(t, cfg, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cfg {
		t.Errorf("expected %q, got %q", cfg, out)
	}
}

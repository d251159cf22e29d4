package config

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Renderer.Nodes != 50 {
		t.Errorf("expected 50 nodes, got %d", cfg.Renderer.Nodes)
	}
	if cfg.Renderer.MaxDistance != 150 {
		t.Errorf("expected max distance 150, got %f", cfg.Renderer.MaxDistance)
	}
	if cfg.Palette.Node != "#4fd1c5cc" {
		t.Errorf("expected node colour #4fd1c5cc, got %q", cfg.Palette.Node)
	}
	if cfg.Palette.Edge != "#4fd1c533" {
		t.Errorf("expected edge colour #4fd1c533, got %q", cfg.Palette.Edge)
	}
	if cfg.Window.Width != WindowWidth || cfg.Window.Height != WindowHeight {
		t.Errorf("expected window %dx%d, got %dx%d", WindowWidth, WindowHeight, cfg.Window.Width, cfg.Window.Height)
	}

	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.Palette != particles.DefaultPalette() {
		t.Errorf("expected default palette, got %+v", s.Palette)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/neural-backdrop" {
		t.Errorf("expected /tmp/test-xdg/neural-backdrop, got %q", dir)
	}
	if p := Path(); p != "/tmp/test-xdg/neural-backdrop/config.toml" {
		t.Errorf("unexpected path %q", p)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir, want := Dir(), filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Renderer.Nodes != 50 {
		t.Errorf("expected defaults, got %d nodes", cfg.Renderer.Nodes)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Renderer.Nodes = 80
	cfg.Renderer.ReseedOnResize = true
	cfg.Palette.Edge = "#ff000080"
	cfg.Site.FormEndpoint = "https://forms.example/abc"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Renderer.Nodes != 80 || !got.Renderer.ReseedOnResize {
		t.Errorf("renderer section not round-tripped: %+v", got.Renderer)
	}
	if got.Palette.Edge != "#ff000080" {
		t.Errorf("expected edge #ff000080, got %q", got.Palette.Edge)
	}
	if got.Site.FormEndpoint != "https://forms.example/abc" {
		t.Errorf("expected form endpoint kept, got %q", got.Site.FormEndpoint)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[renderer]\nnodes = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Renderer.Nodes != 12 {
		t.Errorf("expected 12 nodes, got %d", cfg.Renderer.Nodes)
	}
	if cfg.Renderer.MaxDistance != 150 {
		t.Errorf("expected default max distance, got %f", cfg.Renderer.MaxDistance)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[renderer\nnodes = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettingsRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Palette.Node = "teal"
	if _, err := cfg.Settings(); !errors.Is(err, ErrBadColor) {
		t.Errorf("expected ErrBadColor, got %v", err)
	}

	cfg = Default()
	cfg.Renderer.Nodes = -1
	if _, err := cfg.Settings(); !errors.Is(err, particles.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#4fd1c5cc", color.NRGBA{79, 209, 197, 204}},
		{"#4FD1C5", color.NRGBA{79, 209, 197, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{" 000000 ", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12345", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): expected error", bad)
		}
	}
}

func TestInterval(t *testing.T) {
	if got := Interval(0); got != time.Second/60 {
		t.Errorf("expected 60fps fallback, got %v", got)
	}
	if got := Interval(10); got != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", got)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c })
	}()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)

	cfg := Default()
	cfg.Palette.Node = "#ff0000ff"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got.Palette.Node != "#ff0000ff" {
			t.Errorf("expected reloaded node colour, got %q", got.Palette.Node)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop")
	}
}

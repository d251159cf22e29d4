package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

const (
	AppName = "neural-backdrop"

	WindowWidth  = 1024
	WindowHeight = 512

	VisualRingSize  = 8192
	SnapshotSamples = 2048
	MeterBands      = 64
	SmoothingFactor = 0.6

	// Level bar along the bottom of the window
	LevelBarHeight = 24
	LevelBarMargin = 20

	FrameRate     = 60
	WatchDebounce = 200 * time.Millisecond
)

// Config holds backdrop configuration.
type Config struct {
	Renderer RendererConfig `toml:"renderer"`
	Palette  PaletteConfig  `toml:"palette"`
	Window   WindowConfig   `toml:"window"`
	Terminal TerminalConfig `toml:"terminal"`
	Site     SiteConfig     `toml:"site"`
}

// RendererConfig mirrors particles.Settings.
type RendererConfig struct {
	Nodes          int     `toml:"nodes"`
	MaxDistance    float64 `toml:"max_distance"`
	MaxSpeed       float64 `toml:"max_speed"`
	BaseRadius     float64 `toml:"base_radius"`
	PulseAmplitude float64 `toml:"pulse_amplitude"`
	PulseRate      float64 `toml:"pulse_rate"`
	ReseedOnResize bool    `toml:"reseed_on_resize"`
	Seed           int64   `toml:"seed"` // 0 picks a time-based seed
	FPS            int     `toml:"fps"`
}

// PaletteConfig holds colours as #rrggbbaa hex strings.
type PaletteConfig struct {
	Node      string  `toml:"node"`
	Edge      string  `toml:"edge"`
	LineWidth float64 `toml:"line_width"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Background string `toml:"background"`
	Audio      string `toml:"audio"`
}

// TerminalConfig controls the terminal surface.
type TerminalConfig struct {
	Background string `toml:"background"`
	FPS        int    `toml:"fps"`
}

// SiteConfig controls the portfolio server.
type SiteConfig struct {
	Addr         string `toml:"addr"`
	Content      string `toml:"content"`
	FormEndpoint string `toml:"form_endpoint"`
	StreamFPS    int    `toml:"stream_fps"`
}

// Default returns the default configuration.
func Default() *Config {
	s := particles.DefaultSettings()
	return &Config{
		Renderer: RendererConfig{
			Nodes:          s.Count,
			MaxDistance:    s.MaxDistance,
			MaxSpeed:       s.MaxSpeed,
			BaseRadius:     s.BaseRadius,
			PulseAmplitude: s.PulseAmplitude,
			PulseRate:      s.PulseRate,
			FPS:            FrameRate,
		},
		Palette: PaletteConfig{
			Node:      FormatColor(s.Palette.Node),
			Edge:      FormatColor(s.Palette.Edge),
			LineWidth: s.Palette.LineWidth,
		},
		Window: WindowConfig{
			Width:      WindowWidth,
			Height:     WindowHeight,
			Title:      "Neural Backdrop - Space: pause, S: save, O: soundtrack, Esc/Q: quit",
			Background: "#111827ff",
		},
		Terminal: TerminalConfig{Background: "#000000ff", FPS: 30},
		Site:     SiteConfig{Addr: ":8080", StreamFPS: 10},
	}
}

// Dir returns the config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Settings converts the renderer and palette sections.
func (c *Config) Settings() (particles.Settings, error) {
	palette, err := c.Palette.Parse()
	if err != nil {
		return particles.Settings{}, err
	}
	r := c.Renderer
	s := particles.Settings{
		Count:          r.Nodes,
		MaxDistance:    r.MaxDistance,
		MaxSpeed:       r.MaxSpeed,
		BaseRadius:     r.BaseRadius,
		PulseAmplitude: r.PulseAmplitude,
		PulseRate:      r.PulseRate,
		ReseedOnResize: r.ReseedOnResize,
		Seed:           r.Seed,
		Palette:        palette,
	}
	return s, s.Validate()
}

// Parse converts the hex colours into a particles.Palette.
func (p PaletteConfig) Parse() (particles.Palette, error) {
	node, err := ParseColor(p.Node)
	if err != nil {
		return particles.Palette{}, fmt.Errorf("palette.node: %w", err)
	}
	edge, err := ParseColor(p.Edge)
	if err != nil {
		return particles.Palette{}, fmt.Errorf("palette.edge: %w", err)
	}
	return particles.Palette{Node: node, Edge: edge, LineWidth: p.LineWidth}, nil
}

// Interval converts a frame rate into a tick interval, falling back to
// FrameRate when fps is not positive.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = FrameRate
	}
	return time.Second / time.Duration(fps)
}

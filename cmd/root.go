package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/ui"
)

var version = "0.3.0"

// globals holds the persistent flags shared by every sub-command.
type globals struct {
	configPath string
	seed       int64
	nodes      int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "backdrop",
		Short: "backdrop - an animated particle graph",
		Long: ui.Brand.Sprint(ui.Mark+" backdrop") + " - drifting nodes linked by proximity\n" +
			ui.Subtle.Sprint("Render it in a window, a terminal, a web page or a still image"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			particles.Debug = g.verbose
		},
	}
	root.SetVersionTemplate("backdrop {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default "+config.Path()+")")
	pf.Int64Var(&g.seed, "seed", 0, "Random seed for node placement (0 = time based)")
	pf.IntVar(&g.nodes, "nodes", 0, "Override the node count")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log renderer lifecycle events")

	root.AddCommand(
		windowCmd(g),
		termCmd(g),
		snapshotCmd(g),
		statsCmd(g),
		serveCmd(g),
		configCmd(g),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Sprint("backdrop: ")+err.Error())
	}
	return err
}

func (g *globals) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.Path()
}

// load reads the config file and applies the global overrides.
func (g *globals) load() (*config.Config, particles.Settings, error) {
	cfg, err := config.Load(g.path())
	if err != nil {
		return nil, particles.Settings{}, err
	}
	if g.seed != 0 {
		cfg.Renderer.Seed = g.seed
	}
	if g.nodes != 0 {
		cfg.Renderer.Nodes = g.nodes
	}
	s, err := cfg.Settings()
	if err != nil {
		return nil, particles.Settings{}, err
	}
	return cfg, s, nil
}

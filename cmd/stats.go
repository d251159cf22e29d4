package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/ui"
)

func statsCmd(g *globals) *cobra.Command {
	var (
		frames int
		width  int
		height int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Measure the proximity graph after a number of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := g.load()
			if err != nil {
				return err
			}

			r, err := headlessRun(s, particles.NewRecorder(), width, height, frames, config.Interval(cfg.Renderer.FPS))
			if err != nil {
				return err
			}
			st := particles.Analyze(r.Last(), r.Nodes())

			w := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(st, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			ui.Banner(w, fmt.Sprintf("%d frames on %dx%d", frames, width, height))
			ui.Table(w, []string{"metric", "value"}, [][]string{
				{"frame", fmt.Sprint(st.Frame)},
				{"nodes", fmt.Sprint(st.Nodes)},
				{"edges", fmt.Sprint(st.Edges)},
				{"mean degree", fmt.Sprintf("%.2f", st.MeanDegree)},
				{"components", fmt.Sprint(st.Components)},
				{"isolated", fmt.Sprint(st.Isolated)},
				{"largest cluster", fmt.Sprint(st.LargestCluster)},
				{"mean edge length", fmt.Sprintf("%.1f", st.MeanEdgeLength)},
				{"mean scale", fmt.Sprintf("%.3f", st.MeanScale)},
				{"max scale", fmt.Sprintf("%.3f", st.MaxScale)},
			})
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&frames, "frames", 600, "Frames to run")
	f.IntVar(&width, "width", config.WindowWidth, "Area width in pixels")
	f.IntVar(&height, "height", config.WindowHeight, "Area height in pixels")
	f.BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

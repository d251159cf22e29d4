package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/raster"
	"github.com/iburimskiy/neural-backdrop/internal/svgcanvas"
)

// snapshotExport is the json snapshot format.
type snapshotExport struct {
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Frame  uint64           `json:"frame"`
	Pulse  float64          `json:"pulse"`
	Nodes  []particles.Node `json:"nodes"`
	Edges  []particles.Edge `json:"edges"`
	Stats  particles.Stats  `json:"stats"`
}

func snapshotCmd(g *globals) *cobra.Command {
	var (
		frames int
		width  int
		height int
		format string
		out    string
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames headless and write the last one",
		Long: `Render a number of frames without a display and write the final frame.

  backdrop snapshot --out backdrop.png
  backdrop snapshot --format svg --frames 600 --out -
  backdrop snapshot --format json --seed 7 --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := g.load()
			if err != nil {
				return err
			}
			bg, err := config.ParseColor(cfg.Window.Background)
			if err != nil {
				return fmt.Errorf("window.background: %w", err)
			}
			interval := config.Interval(cfg.Renderer.FPS)

			var buf bytes.Buffer
			switch format {
			case "png":
				if copyIt {
					return fmt.Errorf("--copy supports svg and json only")
				}
				c := raster.New(width, height)
				c.Background = bg
				if _, err := headlessRun(s, c, width, height, frames, interval); err != nil {
					return err
				}
				if err := c.EncodePNG(&buf); err != nil {
					return err
				}
			case "svg":
				c := svgcanvas.New(width, height)
				c.Background = bg
				if _, err := headlessRun(s, c, width, height, frames, interval); err != nil {
					return err
				}
				if err := c.Render(&buf); err != nil {
					return err
				}
			case "json":
				r, err := headlessRun(s, particles.NewRecorder(), width, height, frames, interval)
				if err != nil {
					return err
				}
				info, nodes := r.Last(), r.Nodes()
				data, err := json.MarshalIndent(snapshotExport{
					Width:  width,
					Height: height,
					Frame:  info.Number,
					Pulse:  info.Pulse,
					Nodes:  nodes,
					Edges:  info.Edges,
					Stats:  particles.Analyze(info, nodes),
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				buf.Write(data)
				buf.WriteByte('\n')
			default:
				return fmt.Errorf("unknown format %q (want png, svg or json)", format)
			}

			if !cmd.Flags().Changed("out") {
				out = "backdrop." + format
			}
			if copyIt {
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}

	f := cmd.Flags()
	f.IntVar(&frames, "frames", 120, "Frames to render before writing")
	f.IntVar(&width, "width", config.WindowWidth, "Image width in pixels")
	f.IntVar(&height, "height", config.WindowHeight, "Image height in pixels")
	f.StringVarP(&format, "format", "f", "png", "Output format: png, svg or json")
	f.StringVarP(&out, "out", "o", "backdrop.png", "Output file, - for stdout")
	f.BoolVar(&copyIt, "copy", false, "Also copy svg/json output to the clipboard")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", path, len(data))
	return nil
}


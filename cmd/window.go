package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/game"
)

func windowCmd(g *globals) *cobra.Command {
	var (
		width  int
		height int
		track  string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the backdrop in a desktop window",
		Long: `Open a resizable window running the backdrop.

Keys: Space pause, S save a PNG snapshot, O open a soundtrack, Esc/Q quit.
A soundtrack (wav, mp3 or flac) brightens nodes and edges with its level.`,
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
			if !cmd.Flags().Changed("width") {
				width = cfg.Window.Width
			}
			if !cmd.Flags().Changed("height") {
				height = cfg.Window.Height
			}
			if track == "" {
				track = cfg.Window.Audio
			}

			w, err := game.New(game.Options{
				Settings:   s,
				Width:      width,
				Height:     height,
				Title:      cfg.Window.Title,
				Background: bg,
				FPS:        cfg.Renderer.FPS,
				Audio:      track,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				if err := watchPalette(ctx, g.path(), w.SetPalette); err != nil {
					log.Printf("config: %v", err)
				}
			}()

			return w.Run()
		},
	}

	f := cmd.Flags()
	f.IntVar(&width, "width", config.WindowWidth, "Window width")
	f.IntVar(&height, "height", config.WindowHeight, "Window height")
	f.StringVar(&track, "audio", "", "Soundtrack to play (wav, mp3, flac)")
	return cmd
}

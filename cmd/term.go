package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/term"
)

func termCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the backdrop in the terminal",
		Long: `Draw the backdrop with terminal cells. Each cell stands for
8x16 pixels, so node speed and link distance match the window.

Keys: Esc, q or Ctrl-C quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := g.load()
			if err != nil {
				return err
			}
			bg, err := config.ParseColor(cfg.Terminal.Background)
			if err != nil {
				return fmt.Errorf("terminal.background: %w", err)
			}

			// Log lines would tear the screen.
			if !g.verbose {
				log.SetOutput(io.Discard)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			palettes := make(chan particles.Palette, 1)
			go func() {
				err := watchPalette(ctx, g.path(), func(p particles.Palette) {
					select {
					case palettes <- p:
					case <-ctx.Done():
					}
				})
				if err != nil {
					log.Printf("config: %v", err)
				}
			}()

			return term.Run(ctx, screen, term.Options{
				Settings:   s,
				Interval:   config.Interval(cfg.Terminal.FPS),
				Background: tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)),
				Palettes:   palettes,
			})
		},
	}
	return cmd
}


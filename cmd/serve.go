package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/site"
	"github.com/iburimskiy/neural-backdrop/internal/ui"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr    string
		content string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio page with a live backdrop",
		Long: `Serve the portfolio page. The backdrop is rendered on the server and
streamed to the page as SVG frames.

Environment:
  PORT           listen port when --addr is not given
  FORM_ENDPOINT  hosted form that receives contact submissions
  GIN_MODE       gin run mode (debug, release, test)`,
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

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Site.Addr
				if port := os.Getenv("PORT"); port != "" {
					addr = ":" + port
				}
			}
			if content == "" {
				content = cfg.Site.Content
			}
			endpoint := os.Getenv("FORM_ENDPOINT")
			if endpoint == "" {
				endpoint = cfg.Site.FormEndpoint
			}

			pageContent, err := site.LoadContent(content)
			if err != nil {
				return err
			}

			fps := max(cfg.Renderer.FPS, 1)
			backdrop, err := site.NewBackdrop(site.BackdropOptions{
				Settings:     s,
				Width:        width,
				Height:       height,
				Interval:     config.Interval(fps),
				Background:   bg,
				PublishEvery: fps / max(cfg.Site.StreamFPS, 1),
			})
			if err != nil {
				return err
			}
			if !backdrop.Start() {
				return errors.New("backdrop: no drawing surface")
			}
			defer backdrop.Stop()

			srv := &http.Server{
				Addr: addr,
				Handler: site.New(site.Options{
					Content:  pageContent,
					Relay:    site.NewRelay(endpoint),
					Backdrop: backdrop,
				}).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			w := cmd.OutOrStdout()
			ui.Banner(w, "serve")
			ui.Field(w, "Listening", ui.Brand.Sprint(addr))
			ui.Field(w, "Contact relay", ui.StatusIcon(endpoint != ""))
			fmt.Fprintln(w)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			eg, ctx := errgroup.WithContext(ctx)

			eg.Go(func() error {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			eg.Go(func() error {
				if err := watchPalette(ctx, g.path(), backdrop.Renderer().SetPalette); err != nil {
					log.Printf("config: %v", err)
				}
				return nil
			})

			err = eg.Wait()
			log.Printf("server stopped")
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "Listen address (default from $PORT or config)")
	f.StringVar(&content, "content", "", "YAML content file (default embedded)")
	f.IntVar(&width, "width", 1280, "Backdrop width until a page reports its size")
	f.IntVar(&height, "height", 720, "Backdrop height until a page reports its size")
	return cmd
}

package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// watchPalette applies palette edits from the config file until ctx is
// done. Without a config directory there is nothing to watch.
func watchPalette(ctx context.Context, path string, apply func(particles.Palette)) error {
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil
	}
	return config.Watch(ctx, path, func(c *config.Config) {
		p, err := c.Palette.Parse()
		if err != nil {
			log.Printf("config: ignoring palette: %v", err)
			return
		}
		apply(p)
		log.Printf("config: palette reloaded")
	})
}

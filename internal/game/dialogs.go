package game

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
)

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	log.Printf("window: playing %s", filename)
	return g.Play(filename)
}

func (g *Game) saveSnapshotDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.ConfirmOverwrite(),
		zenity.Filename("backdrop.png"),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if !strings.EqualFold(filepath.Ext(filename), ".png") {
		filename += ".png"
	}

	if err := g.saveSnapshot(filename); err != nil {
		return err
	}
	log.Printf("window: saved snapshot to %s", filename)
	return nil
}

// saveSnapshot writes the current frame over the window background.
func (g *Game) saveSnapshot(path string) error {
	frameImg := g.canvas.Snapshot()
	out := image.NewRGBA(frameImg.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(g.background), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), frameImg, image.Point{}, draw.Over)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/neural-backdrop/internal/clock"
	"github.com/iburimskiy/neural-backdrop/internal/frame"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/viewport"
)

// Options configures a terminal session
type Options struct {
	Settings   particles.Settings
	Interval   time.Duration
	Background tcell.Color
	Clock      clock.Clock

	// Palettes, when set, swaps the palette of the running renderer.
	Palettes <-chan particles.Palette
}

// Run mounts a renderer on screen and animates until ctx is done or the
// user presses Esc, q or Ctrl-C. The screen is initialised and finalised here.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	cols, rows := screen.Size()
	vp := viewport.NewBroadcast(cols*CellWidth, rows*CellHeight)

	canvas := NewCanvas(screen)
	if opts.Background != tcell.ColorDefault {
		canvas.Background = opts.Background
	}

	sched := frame.Then(frame.NewTicker(opts.Interval), screen.Show)
	r, err := particles.New(opts.Settings, canvas, vp, sched, opts.Clock)
	if err != nil {
		return err
	}
	if !r.Mount() {
		log.Printf("term: no drawing surface, backdrop disabled")
	}
	defer r.Unmount()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !handleEvent(ev, screen, vp) {
				return nil
			}
		case p := <-opts.Palettes:
			r.SetPalette(p)
		}
	}
}

// handleEvent returns false when the session should end
func handleEvent(ev tcell.Event, screen tcell.Screen, vp *viewport.Broadcast) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}
	case *tcell.EventResize:
		screen.Sync()
		cols, rows := ev.Size()
		vp.Resize(cols*CellWidth, rows*CellHeight)
	}
	return true
}

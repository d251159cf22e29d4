// Package game shows the backdrop in a desktop window with an optional
// soundtrack driving its brightness.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neural-backdrop/internal/audio"
	"github.com/iburimskiy/neural-backdrop/internal/clock"
	"github.com/iburimskiy/neural-backdrop/internal/config"
	"github.com/iburimskiy/neural-backdrop/internal/frame"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/viewport"
)

// Options configures the window.
type Options struct {
	Settings   particles.Settings
	Width      int
	Height     int
	Title      string
	Background color.NRGBA
	FPS        int
	Audio      string
	Clock      clock.Clock
}

type Game struct {
	// backdrop
	renderer *particles.Renderer
	canvas   *Canvas
	vp       *viewport.Broadcast
	sched    *frame.Manual
	rate     *frame.Rate
	clock    clock.Clock

	// palette before audio tint; replaced on config reload
	paletteMu sync.Mutex
	palette   particles.Palette

	// audio
	player *player
	tinter audio.Tinter

	// state
	opts       Options
	background color.NRGBA
	width      int
	height     int
	paused     bool
	lastErr    error
	prevKey    map[ebiten.Key]bool
}

func New(opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.WindowWidth, config.WindowHeight
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	g := &Game{
		canvas:     NewCanvas(opts.Width, opts.Height),
		vp:         viewport.NewBroadcast(opts.Width, opts.Height),
		sched:      frame.NewManual(),
		rate:       frame.NewRate(0),
		clock:      opts.Clock,
		palette:    opts.Settings.Palette,
		player:     newPlayer(),
		opts:       opts,
		background: opts.Background,
		width:      opts.Width,
		height:     opts.Height,
		prevKey:    map[ebiten.Key]bool{},
	}

	r, err := particles.New(opts.Settings, g.canvas, g.vp, g.sched, opts.Clock)
	if err != nil {
		return nil, err
	}
	g.renderer = r
	return g, nil
}

// SetPalette replaces the base palette, e.g. after a config reload.
func (g *Game) SetPalette(p particles.Palette) {
	g.paletteMu.Lock()
	g.palette = p
	g.paletteMu.Unlock()
	g.renderer.SetPalette(p)
}

func (g *Game) basePalette() particles.Palette {
	g.paletteMu.Lock()
	defer g.paletteMu.Unlock()
	return g.palette
}

// Play loads a soundtrack; an empty path is a no-op.
func (g *Game) Play(path string) error {
	if path == "" {
		return nil
	}
	if err := g.player.load(path); err != nil {
		return err
	}
	g.player.setPaused(g.paused)
	return nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.player.setPaused(g.paused)
	}
	if justPressed(ebiten.KeyS) {
		g.lastErr = g.saveSnapshotDialog()
	}
	if justPressed(ebiten.KeyO) {
		g.lastErr = g.openSoundtrackDialog()
	}

	if !g.renderer.Running() {
		if !g.renderer.Mount() {
			return errors.New("backdrop: no drawing surface")
		}
	}
	if g.paused {
		return nil
	}

	playing := g.player.active()
	level := 0.0
	if playing {
		level = g.player.level()
	}
	if p, ok := g.tinter.Next(g.basePalette(), level, playing); ok {
		g.renderer.SetPalette(p)
	}

	g.sched.Tick(1)
	g.rate.Mark(g.clock.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	screen.DrawImage(g.canvas.Image(), nil)

	g.drawLevelBar(screen)

	info := g.renderer.Last()
	status := fmt.Sprintf("Nodes %d | Edges %d | %.0f fps", len(g.renderer.Nodes()), len(info.Edges), g.rate.FPS(g.clock.Now()))
	if pos, total := g.player.progress(); total > 0 {
		status += fmt.Sprintf(" | %s / %s", formatDuration(pos), formatDuration(total))
	}
	if g.paused {
		status += " | Paused - Space to resume"
	} else {
		status += " | Space: pause  S: save  O: soundtrack  Esc/Q: quit"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// drawLevelBar shows the soundtrack's bands along the bottom edge
func (g *Game) drawLevelBar(screen *ebiten.Image) {
	if !g.player.active() {
		return
	}
	bands := g.player.meter.Bands()

	barHeight := config.LevelBarHeight
	barX := config.LevelBarMargin
	barY := g.height - barHeight - config.LevelBarMargin
	barWidth := g.width - 2*config.LevelBarMargin
	segmentWidth := float64(barWidth) / float64(len(bands))

	for i, v := range bands {
		segmentHeight := max(v*float64(barHeight), 2)
		x := float64(barX) + float64(i)*segmentWidth
		y := float64(barY) + float64(barHeight) - segmentHeight
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(segmentWidth-1), float32(segmentHeight), audio.BandColor(v), false)
	}
}

// Layout follows the window size so the backdrop always fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.vp.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close stops the renderer and the soundtrack.
func (g *Game) Close() {
	g.renderer.Unmount()
	g.player.stop()
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	defer g.Close()

	if err := g.Play(g.opts.Audio); err != nil {
		g.lastErr = err
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if g.opts.FPS > 0 {
		ebiten.SetTPS(g.opts.FPS)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

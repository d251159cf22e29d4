package site

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iburimskiy/neural-backdrop/internal/clock"
	"github.com/iburimskiy/neural-backdrop/internal/frame"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/raster"
	"github.com/iburimskiy/neural-backdrop/internal/svgcanvas"
	"github.com/iburimskiy/neural-backdrop/internal/viewport"
)

// MaxSide bounds the size a client may request through /backdrop.svg.
const MaxSide = 2560

// DefaultResizeEvery is the minimum spacing between client resizes.
const DefaultResizeEvery = time.Second

// BackdropOptions configures the server-side renderer.
type BackdropOptions struct {
	Settings   particles.Settings
	Width      int
	Height     int
	Interval   time.Duration
	Background color.Color

	// PublishEvery captures one frame out of every n for viewers.
	PublishEvery int

	// ResizeEvery spaces client resizes; the backdrop is shared by every
	// viewer, so one client cannot thrash it. Defaults to DefaultResizeEvery.
	ResizeEvery time.Duration

	// Scheduler and Clock default to a ticker at Interval and the system clock.
	Scheduler frame.Scheduler
	Clock     clock.Clock
}

// Backdrop renders the particle graph on the server and hands captured
// frames to HTTP handlers and stream subscribers.
type Backdrop struct {
	renderer *particles.Renderer
	vp       *viewport.Broadcast
	raster   *raster.Canvas
	svg      *svgcanvas.Canvas
	every    int
	count    int
	clock    clock.Clock
	resizes  *rate.Limiter

	// draw is held while a frame is painted and captured
	draw sync.Mutex

	mu       sync.RWMutex
	svgBytes []byte
	img      *image.RGBA
	subs     map[chan []byte]struct{}
}

func NewBackdrop(opts BackdropOptions) (*Backdrop, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("backdrop: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.ResizeEvery <= 0 {
		opts.ResizeEvery = DefaultResizeEvery
	}
	b := &Backdrop{
		vp:      viewport.NewBroadcast(opts.Width, opts.Height),
		raster:  raster.New(opts.Width, opts.Height),
		svg:     svgcanvas.New(opts.Width, opts.Height),
		every:   max(opts.PublishEvery, 1),
		clock:   opts.Clock,
		resizes: rate.NewLimiter(rate.Every(opts.ResizeEvery), 1),
		subs:    make(map[chan []byte]struct{}),
	}
	b.raster.Background = opts.Background
	b.svg.Background = opts.Background

	sched := opts.Scheduler
	if sched == nil {
		sched = frame.NewTicker(opts.Interval)
	}
	sched = frame.Then(frame.Locked(sched, &b.draw), b.tick)

	r, err := particles.New(opts.Settings, teeCanvas{b.raster, b.svg}, b.vp, sched, opts.Clock)
	if err != nil {
		return nil, err
	}
	b.renderer = r
	return b, nil
}

// Start mounts the renderer and captures a first frame.
func (b *Backdrop) Start() bool {
	if !b.renderer.Mount() {
		return false
	}
	b.redraw()
	return true
}

// Stop unmounts the renderer and ends every subscription.
func (b *Backdrop) Stop() {
	b.renderer.Unmount()

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		close(ch)
	}
	b.subs = make(map[chan []byte]struct{})
}

// Renderer exposes the underlying renderer, e.g. for palette reloads.
func (b *Backdrop) Renderer() *particles.Renderer {
	return b.renderer
}

// Resize changes the drawing area and repaints at the new size. Sizes
// outside 1..MaxSide, repeats of the current size and resizes arriving
// faster than ResizeEvery are ignored.
func (b *Backdrop) Resize(w, h int) bool {
	if w < 1 || h < 1 || w > MaxSide || h > MaxSide {
		return false
	}
	b.draw.Lock()
	defer b.draw.Unlock()
	if cw, ch := b.vp.Size(); cw == w && ch == h {
		return false
	}
	if !b.resizes.AllowN(b.clock.Now(), 1) {
		return false
	}
	b.vp.Resize(w, h)
	b.renderer.Frame()
	b.capture()
	return true
}

// SVG returns the last captured frame.
func (b *Backdrop) SVG() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.svgBytes
}

// PNG encodes the last captured frame.
func (b *Backdrop) PNG(w io.Writer) error {
	b.mu.RLock()
	img := b.img
	b.mu.RUnlock()
	if img == nil {
		return fmt.Errorf("backdrop: no frame captured yet")
	}
	return png.Encode(w, img)
}

// Stats analyses the most recent frame.
func (b *Backdrop) Stats() particles.Stats {
	b.draw.Lock()
	defer b.draw.Unlock()
	return particles.Analyze(b.renderer.Last(), b.renderer.Nodes())
}

// Subscribe returns a channel receiving each captured SVG frame. Slow
// subscribers miss frames rather than stall the renderer.
func (b *Backdrop) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Backdrop) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Backdrop) redraw() {
	b.draw.Lock()
	defer b.draw.Unlock()
	b.renderer.Frame()
	b.capture()
}

// tick runs after every scheduled frame with draw held
func (b *Backdrop) tick() {
	b.count++
	if b.count%b.every == 0 {
		b.capture()
	}
}

// capture copies the canvases out; draw must be held
func (b *Backdrop) capture() {
	var buf bytes.Buffer
	if err := b.svg.Render(&buf); err != nil {
		log.Printf("backdrop: render svg: %v", err)
		return
	}
	img := b.raster.Image()
	frameSVG := buf.Bytes()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.svgBytes = frameSVG
	b.img = img
	for ch := range b.subs {
		select {
		case ch <- frameSVG:
		default:
		}
	}
}

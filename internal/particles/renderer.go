// Package particles implements the animated particle-graph backdrop: a fixed
// set of drifting nodes, pulsing discs, and edges between nearby nodes that
// feed back into the pulse.
package particles

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/neural-backdrop/internal/clock"
	"github.com/iburimskiy/neural-backdrop/internal/frame"
	"github.com/iburimskiy/neural-backdrop/internal/viewport"
)

// Debug enables diagnostic log lines
var Debug bool

func debugf(format string, args ...any) {
	if Debug {
		log.Printf("particles: "+format, args...)
	}
}

// FrameInfo describes one painted frame
type FrameInfo struct {
	Number uint64    `json:"number"`
	Time   time.Time `json:"time"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Pulse  float64   `json:"pulse"`
	Edges  []Edge    `json:"edges"`
}

// Renderer owns the node set and repaints it once per scheduled frame
type Renderer struct {
	settings Settings
	canvas   Canvas
	viewport viewport.Viewport
	sched    frame.Scheduler
	clock    clock.Clock

	// node state, guarded by mu; frames and resize callbacks arrive on
	// different goroutines depending on the host
	mu      sync.Mutex
	rng     *rand.Rand
	nodes   []Node
	edges   []Edge
	palette Palette
	surface Surface
	width   float64
	height  float64
	frames  uint64
	last    FrameInfo

	// lifecycle, guarded by life
	life        sync.Mutex
	mounted     bool
	cancelLoop  func()
	unsubscribe func()
}

// New creates an unmounted renderer
func New(settings Settings, canvas Canvas, vp viewport.Viewport, sched frame.Scheduler, clk clock.Clock) (*Renderer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if canvas == nil || vp == nil || sched == nil {
		return nil, fmt.Errorf("renderer needs a canvas, a viewport and a scheduler")
	}
	if clk == nil {
		clk = clock.System{}
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Renderer{
		settings: settings,
		canvas:   canvas,
		viewport: vp,
		sched:    sched,
		clock:    clk,
		rng:      rand.New(rand.NewSource(seed)),
		palette:  settings.Palette,
	}, nil
}

// Mount acquires the drawing context, seeds the nodes, subscribes to resize
// and starts the frame loop. Without a drawing context it does nothing and
// returns false; the backdrop is decorative so this is not an error.
func (r *Renderer) Mount() bool {
	r.life.Lock()
	defer r.life.Unlock()

	if r.mounted {
		return true
	}

	surface, err := r.canvas.Context()
	if err != nil || surface == nil {
		debugf("mount skipped: %v", err)
		return false
	}

	// subscribe before reading the size so no resize falls in between;
	// one delivered before the surface is set is already reflected by Size
	r.unsubscribe = r.viewport.OnResize(r.resize)

	r.mu.Lock()
	w, h := r.viewport.Size()
	r.canvas.SetSize(w, h)
	r.surface = surface
	r.width, r.height = float64(w), float64(h)
	r.seed()
	r.mu.Unlock()

	r.cancelLoop = r.sched.Schedule(func() { r.Frame() })
	r.mounted = true

	debugf("mounted %d nodes on %dx%d", r.settings.Count, w, h)
	return true
}

// Unmount stops the frame loop and drops the resize subscription.
// Safe to call more than once.
func (r *Renderer) Unmount() {
	r.life.Lock()
	defer r.life.Unlock()

	if !r.mounted {
		return
	}

	r.cancelLoop()
	r.unsubscribe()
	r.cancelLoop, r.unsubscribe = nil, nil
	r.mounted = false

	r.mu.Lock()
	r.surface = nil
	r.nodes = nil
	r.mu.Unlock()

	debugf("unmounted after %d frames", r.Frames())
}

// Running reports whether the frame loop is active
func (r *Renderer) Running() bool {
	r.life.Lock()
	defer r.life.Unlock()
	return r.mounted
}

// resize tracks the viewport; a repeat of the current size changes nothing
func (r *Renderer) resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil {
		return
	}
	if float64(w) == r.width && float64(h) == r.height {
		return
	}

	r.canvas.SetSize(w, h)
	r.width, r.height = float64(w), float64(h)

	if r.settings.ReseedOnResize {
		r.seed()
	}
	debugf("resized to %dx%d", w, h)
}

// seed places every node uniformly inside the current bounds; mu must be held
func (r *Renderer) seed() {
	if r.nodes == nil {
		r.nodes = make([]Node, r.settings.Count)
	}
	speed := r.settings.MaxSpeed
	for i := range r.nodes {
		r.nodes[i] = Node{
			Pos:   r2.Vec{X: r.rng.Float64() * r.width, Y: r.rng.Float64() * r.height},
			Vel:   r2.Vec{X: (r.rng.Float64()*2 - 1) * speed, Y: (r.rng.Float64()*2 - 1) * speed},
			Scale: 1,
		}
	}
}

// selfPulse is the shared oscillation, floored at 1 so scale never shrinks a disc
func (r *Renderer) selfPulse(now time.Time) float64 {
	ms := float64(now.UnixNano()) / float64(time.Millisecond)
	return math.Max(1, 1+r.settings.PulseAmplitude*math.Sin(ms*r.settings.PulseRate))
}

// Frame advances and paints one frame. Before Mount (or after Unmount) it
// paints nothing and returns a zero FrameInfo.
func (r *Renderer) Frame() FrameInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.surface
	if s == nil {
		return FrameInfo{}
	}

	now := r.clock.Now()
	pulse := r.selfPulse(now)
	pal := r.palette
	radius := r.settings.BaseRadius

	s.Clear()

	// Move, draw, then reset to the self-pulse; the disc uses last frame's scale
	for i := range r.nodes {
		n := &r.nodes[i]
		n.advance(r.width, r.height)
		s.FillCircle(n.Pos.X, n.Pos.Y, radius*n.Scale, pal.Node)
		n.Scale = pulse
	}

	// Proximity edges, each unordered pair once
	maxD := r.settings.MaxDistance
	edges := r.edges[:0]
	for i := 0; i < len(r.nodes); i++ {
		a := &r.nodes[i]
		for j := i + 1; j < len(r.nodes); j++ {
			b := &r.nodes[j]
			d := r2.Norm(r2.Sub(a.Pos, b.Pos))
			if d >= maxD {
				continue
			}

			s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, pal.LineWidth, pal.Edge)

			boost := proximityBoost(d, maxD)
			a.Scale = math.Max(a.Scale, boost)
			b.Scale = math.Max(b.Scale, boost)
			edges = append(edges, Edge{I: i, J: j, Distance: d})
		}
	}
	r.edges = edges

	r.frames++
	r.last = FrameInfo{
		Number: r.frames,
		Time:   now,
		Width:  r.width,
		Height: r.height,
		Pulse:  pulse,
		Edges:  append([]Edge(nil), edges...),
	}
	return r.last
}

// Last returns the most recent frame
func (r *Renderer) Last() FrameInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Frames returns the number of frames painted
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Nodes returns a copy of the node set
func (r *Renderer) Nodes() []Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// SetNodes replaces node state, used for replays and tests.
// The count must match; the node set never grows or shrinks.
func (r *Renderer) SetNodes(nodes []Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nodes == nil {
		return fmt.Errorf("set nodes: renderer is not mounted")
	}
	if len(nodes) != len(r.nodes) {
		return fmt.Errorf("set nodes: got %d nodes, renderer holds %d", len(nodes), len(r.nodes))
	}
	copy(r.nodes, nodes)
	return nil
}

// Palette returns the active palette
func (r *Renderer) Palette() Palette {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.palette
}

// SetPalette swaps colours and line width from the next frame on
func (r *Renderer) SetPalette(p Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette = p
}

// Settings returns the construction settings
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Bounds returns the current drawing bounds
func (r *Renderer) Bounds() (w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

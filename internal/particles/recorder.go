package particles

import (
	"image/color"
	"sync"
)

// OpKind is the kind of a recorded draw call
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded draw call
type Op struct {
	Kind   OpKind
	X0, Y0 float64
	X1, Y1 float64
	R      float64
	Width  float64
	Color  color.NRGBA
}

// Recorder is an in-memory Canvas that records draw calls of the current frame.
// Set Unavailable to simulate a canvas without a drawing context.
type Recorder struct {
	mu          sync.Mutex
	width       int
	height      int
	ops         []Op
	resizes     int
	Unavailable bool
}

// NewRecorder creates a recorder canvas
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetSize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = w, h
	r.resizes++
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Recorder) Context() (Surface, error) {
	if r.Unavailable {
		return nil, ErrNoContext
	}
	return r, nil
}

// Clear drops the ops of the previous frame
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpCircle, X0: x, Y0: y, R: radius, Color: nrgba(c)})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: nrgba(c)})
}

// Ops returns a copy of the draw calls since the last Clear
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many ops of kind k were recorded since the last Clear
func (r *Recorder) Count(k OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Resizes returns how many times SetSize was called
func (r *Recorder) Resizes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resizes
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

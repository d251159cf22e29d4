// Package svgcanvas keeps the draw calls of the last frame and writes them
// out as SVG with svgo.
package svgcanvas

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"

	svg "github.com/ajstarks/svgo"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// Precision is how many SVG user units make one pixel; svgo only takes ints
const Precision = 10

type shape struct {
	line   bool
	x0, y0 float64
	x1, y1 float64
	r      float64
	width  float64
	color  color.NRGBA
}

// Canvas is a particles.Canvas holding the shapes of the current frame
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	shapes []shape

	// Background fills the whole image when set
	Background color.Color
}

// New creates an empty w×h canvas
func New(w, h int) *Canvas {
	return &Canvas{width: w, height: h}
}

func (c *Canvas) SetSize(w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = w, h
}

func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Canvas) Context() (particles.Surface, error) {
	return c, nil
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shapes = c.shapes[:0]
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shapes = append(c.shapes, shape{x0: x, y0: y, r: r, color: toNRGBA(clr)})
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shapes = append(c.shapes, shape{line: true, x0: x0, y0: y0, x1: x1, y1: y1, width: width, color: toNRGBA(clr)})
}

// Render writes the current frame as a standalone SVG document
func (c *Canvas) Render(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(c.width, c.height, 0, 0, c.width*Precision, c.height*Precision)

	if c.Background != nil {
		bg := toNRGBA(c.Background)
		canvas.Rect(0, 0, c.width*Precision, c.height*Precision, "fill:"+cssRGB(bg)+opacity("fill", bg))
	}

	for _, s := range c.shapes {
		if s.line {
			canvas.Line(scaled(s.x0), scaled(s.y0), scaled(s.x1), scaled(s.y1),
				fmt.Sprintf("stroke:%s%s;stroke-width:%d", cssRGB(s.color), opacity("stroke", s.color), max(scaled(s.width), 1)))
			continue
		}
		canvas.Circle(scaled(s.x0), scaled(s.y0), scaled(s.r), "fill:"+cssRGB(s.color)+opacity("fill", s.color))
	}

	canvas.End()
	return ew.err
}

// Bytes renders the current frame into memory
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Shapes returns how many circles and lines the current frame holds
func (c *Canvas) Shapes() (circles, lines int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.shapes {
		if s.line {
			lines++
		} else {
			circles++
		}
	}
	return circles, lines
}

func scaled(v float64) int {
	return int(math.Round(v * Precision))
}

func cssRGB(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(prop string, c color.NRGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(";%s-opacity:%.3f", prop, float64(c.A)/255)
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// errWriter remembers the first write error; svgo ignores them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

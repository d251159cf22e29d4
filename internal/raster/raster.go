// Package raster paints frames into an in-memory RGBA image with gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"git.sr.ht/~sbinet/gg"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// Canvas is a particles.Canvas backed by a gg context
type Canvas struct {
	mu     sync.Mutex
	dc     *gg.Context
	width  int
	height int

	// Background is composited under the frame by Image and EncodePNG;
	// nil keeps the transparent backdrop
	Background color.Color
}

// New creates a canvas of w×h pixels
func New(w, h int) *Canvas {
	c := &Canvas{}
	c.SetSize(w, h)
	return c
}

// SetSize reallocates the image; a repeat of the current size keeps it
func (c *Canvas) SetSize(w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dc != nil && w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	// gg cannot hold an empty image
	c.dc = gg.NewContext(max(w, 1), max(h, 1))
}

func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Context hands out the canvas itself; draws go to whatever image is current
func (c *Canvas) Context() (particles.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dc == nil {
		return nil, particles.ErrNoContext
	}
	return c, nil
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.SetColor(clr)
	c.dc.DrawCircle(x, y, r)
	c.dc.Fill()
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.SetColor(clr)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

// Image returns a copy of the current frame over the background
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.dc.Image()
	out := image.NewRGBA(src.Bounds())
	if c.Background != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
	}
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Over)
	return out
}

// EncodePNG writes the current frame as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

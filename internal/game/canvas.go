package game

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// Canvas is a particles.Canvas backed by an offscreen ebiten image.
type Canvas struct {
	mu  sync.Mutex
	img *ebiten.Image
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.SetSize(w, h)
	return c
}

func (c *Canvas) SetSize(w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, h = max(w, 1), max(h, 1)
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
}

func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Context() (particles.Surface, error) {
	return c, nil
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.img.Clear()
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), clr, true)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// Image returns the offscreen frame for blitting.
func (c *Canvas) Image() *ebiten.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// Snapshot copies the offscreen frame into an RGBA image. Only valid while
// the game loop is running.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	c.img.ReadPixels(out.Pix)
	return out
}

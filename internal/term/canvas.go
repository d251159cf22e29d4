// Package term draws the backdrop on a terminal with tcell.
package term

import (
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// Virtual pixels per terminal cell; cells are roughly twice as tall as wide
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	runeDot   = '•'
	runeDisc  = '●'
	runeTrace = '·'
)

// Canvas maps the renderer's pixel space onto screen cells
type Canvas struct {
	screen tcell.Screen

	mu     sync.Mutex
	width  int
	height int
	discs  map[[2]int]bool // cells holding a disc this frame

	Background tcell.Color
}

// NewCanvas creates a canvas on an initialised screen
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{
		screen:     screen,
		discs:      make(map[[2]int]bool),
		Background: tcell.ColorBlack,
	}
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
	if c.screen == nil {
		return nil, particles.ErrNoContext
	}
	return c, nil
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.discs)
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.Background))
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cx, cy := cell(x, y)
	ch := runeDot
	if r >= 3 {
		ch = runeDisc
	}
	c.discs[[2]int{cx, cy}] = true
	c.screen.SetContent(cx, cy, ch, nil, c.style(clr))
}

// StrokeLine traces the segment cell by cell, leaving disc cells alone
func (c *Canvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.style(clr)
	ax, ay := cell(x0, y0)
	bx, by := cell(x1, y1)
	bresenham(ax, ay, bx, by, func(x, y int) {
		if !c.discs[[2]int{x, y}] {
			c.screen.SetContent(x, y, runeTrace, nil, style)
		}
	})
}

// style fades the colour by its alpha against the black terminal background
func (c *Canvas) style(clr color.Color) tcell.Style {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := int32(n.A)
	// Keep faint edges visible on terminals that quantise dark colours
	if a < 96 {
		a = 96
	}
	fg := tcell.NewRGBColor(int32(n.R)*a/255, int32(n.G)*a/255, int32(n.B)*a/255)
	return tcell.StyleDefault.Foreground(fg).Background(c.Background)
}

func cell(x, y float64) (int, int) {
	return int(x) / CellWidth, int(y) / CellHeight
}

// bresenham visits every cell on the line from (x0,y0) to (x1,y1)
func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

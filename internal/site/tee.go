package site

import (
	"image/color"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

// teeCanvas draws every frame onto several canvases at once.
type teeCanvas []particles.Canvas

func (t teeCanvas) SetSize(w, h int) {
	for _, c := range t {
		c.SetSize(w, h)
	}
}

func (t teeCanvas) Size() (int, int) {
	return t[0].Size()
}

func (t teeCanvas) Context() (particles.Surface, error) {
	out := make(teeSurface, 0, len(t))
	for _, c := range t {
		s, err := c.Context()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

type teeSurface []particles.Surface

func (t teeSurface) Clear() {
	for _, s := range t {
		s.Clear()
	}
}

func (t teeSurface) FillCircle(x, y, r float64, clr color.Color) {
	for _, s := range t {
		s.FillCircle(x, y, r, clr)
	}
}

func (t teeSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	for _, s := range t {
		s.StrokeLine(x0, y0, x1, y1, width, clr)
	}
}

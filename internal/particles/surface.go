package particles

import (
	"errors"
	"image/color"
)

// ErrNoContext is returned by a Canvas that cannot hand out a drawing surface
var ErrNoContext = errors.New("drawing context unavailable")

// Surface is the 2D drawing context a frame paints on
type Surface interface {
	// Clear erases the whole surface to transparent
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Canvas is the element a renderer mounts on. It owns the pixel size and
// hands out the Surface that draws into it.
type Canvas interface {
	SetSize(w, h int)
	Size() (w, h int)
	Context() (Surface, error)
}

package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestCanvasDrawsDiscAndLine(t *testing.T) {
	c := New(100, 50)
	s, err := c.Context()
	if err != nil {
		t.Fatal(err)
	}

	s.Clear()
	s.FillCircle(20, 20, 5, color.NRGBA{R: 255, A: 255})
	s.StrokeLine(50, 10, 90, 10, 2, color.NRGBA{B: 255, A: 255})

	img := c.Image()
	if got := img.RGBAAt(20, 20); got.R < 200 || got.A < 200 {
		t.Errorf("Expected opaque red at disc centre, got %+v", got)
	}
	if got := img.RGBAAt(70, 10); got.B < 100 {
		t.Errorf("Expected blue on the line, got %+v", got)
	}
	if got := img.RGBAAt(5, 45); got.A != 0 {
		t.Errorf("Expected transparent corner, got %+v", got)
	}
}

func TestClearErasesPreviousFrame(t *testing.T) {
	c := New(10, 10)
	s, _ := c.Context()

	s.FillCircle(5, 5, 4, color.White)
	s.Clear()

	if got := c.Image().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("Expected cleared pixel, got %+v", got)
	}
}

func TestBackgroundAndPNG(t *testing.T) {
	c := New(8, 4)
	c.Background = color.NRGBA{R: 17, G: 24, B: 39, A: 255}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %v", b)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 17 || g>>8 != 24 || b>>8 != 39 || a>>8 != 255 {
		t.Errorf("Expected background colour, got %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestSetSize(t *testing.T) {
	c := New(10, 10)
	c.SetSize(30, 20)

	if w, h := c.Size(); w != 30 || h != 20 {
		t.Errorf("Expected 30x20, got %dx%d", w, h)
	}
	if b := c.Image().Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("Expected image resized to 30x20, got %v", b)
	}

	c.SetSize(0, 0)
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Expected logical size 0x0, got %dx%d", w, h)
	}
}

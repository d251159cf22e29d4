package svgcanvas

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestRenderWritesShapes(t *testing.T) {
	c := New(200, 100)
	s, _ := c.Context()

	s.Clear()
	s.FillCircle(10.25, 20, 2.4, color.NRGBA{R: 79, G: 209, B: 197, A: 204})
	s.StrokeLine(10, 20, 30, 40, 0.5, color.NRGBA{R: 79, G: 209, B: 197, A: 51})

	out, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)

	for _, want := range []string{
		`width="200" height="100"`,
		`viewBox="0 0 2000 1000"`,
		`<circle cx="103" cy="200" r="24"`,
		`fill:rgb(79,209,197);fill-opacity:0.800`,
		`<line x1="100" y1="200" x2="300" y2="400"`,
		`stroke:rgb(79,209,197);stroke-opacity:0.200;stroke-width:5`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Expected SVG to contain %q\n%s", want, doc)
		}
	}
	if circles, lines := c.Shapes(); circles != 1 || lines != 1 {
		t.Errorf("Expected 1 circle and 1 line, got %d and %d", circles, lines)
	}
}

func TestClearDropsShapes(t *testing.T) {
	c := New(10, 10)
	s, _ := c.Context()
	s.FillCircle(1, 1, 1, color.White)
	s.Clear()

	if circles, lines := c.Shapes(); circles != 0 || lines != 0 {
		t.Errorf("Expected empty frame, got %d circles %d lines", circles, lines)
	}
}

func TestBackgroundRect(t *testing.T) {
	c := New(4, 3)
	c.Background = color.NRGBA{R: 17, G: 24, B: 39, A: 255}

	out, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<rect x="0" y="0" width="40" height="30" style="fill:rgb(17,24,39)"`) {
		t.Errorf("Expected opaque background rect, got\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderReportsWriteError(t *testing.T) {
	if err := New(1, 1).Render(failingWriter{}); err == nil {
		t.Error("Expected write error to surface")
	}
}

package audio

import (
	"math"
	"testing"

	"github.com/faiface/beep"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

func counter() beep.Streamer {
	var n float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			n++
			samples[i] = [2]float64{n, -n}
		}
		return len(samples), true
	})
}

func constant(v float64) [][2]float64 {
	out := make([][2]float64, 512)
	for i := range out {
		out[i] = [2]float64{v, v}
	}
	return out
}

func TestTapSnapshotChronological(t *testing.T) {
	tap := NewTap(counter(), 4)
	buf := make([][2]float64, 6)
	if n, ok := tap.Stream(buf); n != 6 || !ok {
		t.Fatalf("Expected 6 samples streamed, got %d %v", n, ok)
	}

	got := tap.Snapshot(3)
	want := []float64{4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i][0] != w || got[i][1] != -w {
			t.Errorf("sample %d: expected %v, got %v", i, w, got[i])
		}
	}
}

func TestTapSnapshotBeforeFull(t *testing.T) {
	tap := NewTap(counter(), 8)
	tap.Stream(make([][2]float64, 2))

	got := tap.Snapshot(5)
	if len(got) != 2 {
		t.Fatalf("Expected only recorded samples, got %d", len(got))
	}
	if got[0][0] != 1 || got[1][0] != 2 {
		t.Errorf("Expected 1,2 got %v", got)
	}
}

func TestTapSnapshotCapsAtRing(t *testing.T) {
	tap := NewTap(counter(), 4)
	tap.Stream(make([][2]float64, 10))

	if got := tap.Snapshot(100); len(got) != 4 || got[3][0] != 10 {
		t.Errorf("Expected last 4 samples ending at 10, got %v", got)
	}
}

func TestMeterSmoothing(t *testing.T) {
	m := NewMeter(8)
	loud := constant(0.5)
	mag := math.Pow(0.5, DefaultExponent)

	first := m.Update(loud)
	if want := (1 - DefaultSmoothing) * mag; math.Abs(first-want) > 1e-9 {
		t.Errorf("Expected first level %.4f, got %.4f", want, first)
	}

	prev := first
	for i := 0; i < 20; i++ {
		level := m.Update(loud)
		if level < prev {
			t.Fatalf("Expected level to rise towards %.4f, fell to %.4f", mag, level)
		}
		prev = level
	}
	if math.Abs(prev-mag) > 1e-3 {
		t.Errorf("Expected level to settle at %.4f, got %.4f", mag, prev)
	}

	quiet := m.Update(constant(0))
	if quiet >= prev {
		t.Errorf("Expected silence to decay the level, got %.4f after %.4f", quiet, prev)
	}
}

func TestMeterClampsAndResets(t *testing.T) {
	m := NewMeter(4)
	for i := 0; i < 50; i++ {
		m.Update(constant(4))
	}
	if l := m.Level(); l > 1 {
		t.Errorf("Expected level at most 1, got %f", l)
	}
	for i, b := range m.Bands() {
		if b < 0 || b > 1 {
			t.Errorf("band %d out of range: %f", i, b)
		}
	}

	m.Reset()
	if l := m.Level(); l != 0 {
		t.Errorf("Expected 0 after reset, got %f", l)
	}
	if l := m.Update(nil); l != 0 {
		t.Errorf("Expected empty snapshot to keep level 0, got %f", l)
	}
}

func TestTint(t *testing.T) {
	base := particles.DefaultPalette()

	neutral := Tint(base, 0.5)
	if neutral.Node.A != base.Node.A || neutral.Edge.A != base.Edge.A {
		t.Errorf("Expected mid level to keep alpha, got %d/%d", neutral.Node.A, neutral.Edge.A)
	}
	if neutral.LineWidth != 0.75 {
		t.Errorf("Expected line width 0.75, got %f", neutral.LineWidth)
	}

	dim := Tint(base, 0)
	if dim.Node.A != 102 {
		t.Errorf("Expected node alpha 102 at silence, got %d", dim.Node.A)
	}

	loud := Tint(base, 3)
	if loud.Node.A != 255 {
		t.Errorf("Expected node alpha to saturate at 255, got %d", loud.Node.A)
	}
	if loud.Node.R != base.Node.R || loud.Node.G != base.Node.G || loud.Node.B != base.Node.B {
		t.Errorf("Expected hue untouched, got %v", loud.Node)
	}
}

func TestTinterRestoresBaseAfterPlayback(t *testing.T) {
	base := particles.DefaultPalette()
	var tn Tinter

	if _, apply := tn.Next(base, 0, false); apply {
		t.Error("Expected nothing to apply before playback")
	}

	p, apply := tn.Next(base, 0, true)
	if !apply || p.Node.A != 102 {
		t.Fatalf("Expected tinted palette while playing, got apply=%v alpha=%d", apply, p.Node.A)
	}

	p, apply = tn.Next(base, 0, false)
	if !apply {
		t.Fatal("Expected base palette to be applied when playback ends")
	}
	if p != base {
		t.Errorf("Expected base palette %+v, got %+v", base, p)
	}

	if _, apply := tn.Next(base, 0, false); apply {
		t.Error("Expected no further changes while silent")
	}
}

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
		{-120, 0, 0, 255},
		{360, 255, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, 1, 1)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hsvToRgb(%v): expected %d,%d,%d got %d,%d,%d", tt.h, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestBandColorAlpha(t *testing.T) {
	if c := BandColor(0); c.A != 100 {
		t.Errorf("Expected alpha 100 for silence, got %d", c.A)
	}
	if c := BandColor(2); c.A != 255 {
		t.Errorf("Expected alpha 255 when saturated, got %d", c.A)
	}
}

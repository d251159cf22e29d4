package audio

import (
	"image/color"
	"math"
	"sync"

	"github.com/iburimskiy/neural-backdrop/internal/particles"
)

const (
	// DefaultSmoothing weighs the previous band value against the new one.
	DefaultSmoothing = 0.6
	// DefaultExponent compresses RMS so quiet passages still register.
	DefaultExponent = 0.3
	DefaultBands    = 64
)

// Meter splits sample snapshots into bands and keeps a smoothed, compressed
// RMS per band.
type Meter struct {
	Smoothing float64
	Exponent  float64

	mu    sync.Mutex
	bands []float64
}

func NewMeter(bands int) *Meter {
	if bands < 1 {
		bands = 1
	}
	return &Meter{
		Smoothing: DefaultSmoothing,
		Exponent:  DefaultExponent,
		bands:     make([]float64, bands),
	}
}

// Update folds a snapshot into the bands and returns the new level.
func (m *Meter) Update(samples [][2]float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(samples) == 0 {
		return m.level()
	}

	nBands := len(m.bands)
	segmentSize := int(math.Max(1, float64(len(samples))/float64(nBands)))
	for i := 0; i < nBands; i++ {
		start := i * segmentSize
		end := start + segmentSize
		if start >= len(samples) {
			break
		}
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for s := start; s < end; s++ {
			mono := (samples[s][0] + samples[s][1]) * 0.5
			sumSquares += mono * mono
		}

		rms := math.Sqrt(sumSquares / float64(end-start))
		mag := clamp01(math.Pow(rms, m.Exponent))
		m.bands[i] = m.Smoothing*m.bands[i] + (1-m.Smoothing)*mag
	}
	return m.level()
}

// Bands returns a copy of the per-band values, each in [0,1].
func (m *Meter) Bands() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.bands...)
}

// Level is the mean band value in [0,1].
func (m *Meter) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level()
}

// Reset silences every band.
func (m *Meter) Reset() {
	m.mu.Lock()
	clear(m.bands)
	m.mu.Unlock()
}

func (m *Meter) level() float64 {
	var sum float64
	for _, v := range m.bands {
		sum += v
	}
	return clamp01(sum / float64(len(m.bands)))
}

// Tint brightens a palette with the level. Alpha scales between 0.5x and
// 1.5x of the base and the stroke widens up to double.
func Tint(p particles.Palette, level float64) particles.Palette {
	level = clamp01(level)
	gain := 0.5 + level
	p.Node.A = scaleAlpha(p.Node.A, gain)
	p.Edge.A = scaleAlpha(p.Edge.A, gain)
	p.LineWidth *= 1 + level
	return p
}

// Tinter remembers whether the applied palette carries a tint so the base
// comes back once the soundtrack stops.
type Tinter struct {
	tinted bool
}

// Next returns the palette to apply for this frame and whether it must be
// applied at all. While playing every frame is tinted; the first frame
// after playback ends restores base, later silent frames change nothing.
func (t *Tinter) Next(base particles.Palette, level float64, playing bool) (particles.Palette, bool) {
	if playing {
		t.tinted = true
		return Tint(base, level), true
	}
	if t.tinted {
		t.tinted = false
		return base, true
	}
	return base, false
}

// BandColor is the colour of a level bar segment. Hue sweeps from cyan for
// quiet bands towards magenta as they get louder.
func BandColor(v float64) color.NRGBA {
	v = clamp01(v)
	r, g, b := hsvToRgb(180+120*v, 0.8, 0.9)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(100 + 155*v)}
}

func scaleAlpha(a uint8, gain float64) uint8 {
	return uint8(math.Round(255 * clamp01(float64(a)/255*gain)))
}

package particles

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidSettings is wrapped by every settings validation failure
var ErrInvalidSettings = errors.New("invalid renderer settings")

// Settings configures a renderer. N is fixed for the renderer's lifetime.
type Settings struct {
	Count          int
	MaxDistance    float64
	MaxSpeed       float64 // per-axis velocity is drawn from [-MaxSpeed, MaxSpeed)
	BaseRadius     float64
	PulseAmplitude float64
	PulseRate      float64 // radians per millisecond
	ReseedOnResize bool
	Seed           int64 // 0 seeds from the wall clock
	Palette        Palette
}

// Palette is the look of a frame; it can change while running
type Palette struct {
	Node      color.NRGBA
	Edge      color.NRGBA
	LineWidth float64
}

// DefaultPalette is teal discs with faint teal edges
func DefaultPalette() Palette {
	return Palette{
		Node:      color.NRGBA{R: 79, G: 209, B: 197, A: 204},
		Edge:      color.NRGBA{R: 79, G: 209, B: 197, A: 51},
		LineWidth: 0.5,
	}
}

// DefaultSettings returns the stock backdrop: 50 nodes linked under 150px
func DefaultSettings() Settings {
	return Settings{
		Count:          50,
		MaxDistance:    150,
		MaxSpeed:       0.15,
		BaseRadius:     2,
		PulseAmplitude: 0.2,
		PulseRate:      0.005,
		Palette:        DefaultPalette(),
	}
}

// Validate reports the first invalid field
func (s Settings) Validate() error {
	switch {
	case s.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidSettings, s.Count)
	case s.MaxDistance <= 0:
		return fmt.Errorf("%w: max distance must be positive, got %v", ErrInvalidSettings, s.MaxDistance)
	case s.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed %v is negative", ErrInvalidSettings, s.MaxSpeed)
	case s.BaseRadius <= 0:
		return fmt.Errorf("%w: base radius must be positive, got %v", ErrInvalidSettings, s.BaseRadius)
	case s.PulseAmplitude < 0 || s.PulseAmplitude > 1:
		return fmt.Errorf("%w: pulse amplitude %v outside [0,1]", ErrInvalidSettings, s.PulseAmplitude)
	case s.Palette.LineWidth < 0:
		return fmt.Errorf("%w: line width %v is negative", ErrInvalidSettings, s.Palette.LineWidth)
	}
	return nil
}

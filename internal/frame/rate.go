package frame

import (
	"sync"
	"time"
)

// Rate measures frames per second over a sliding window
type Rate struct {
	mu     sync.Mutex
	window time.Duration
	stamps []time.Time
}

// NewRate creates a meter averaging over window
func NewRate(window time.Duration) *Rate {
	if window <= 0 {
		window = time.Second
	}
	return &Rate{window: window}
}

// Mark records a frame at now
func (r *Rate) Mark(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamps = append(r.stamps, now)
	r.trim(now)
}

// FPS returns the frame rate observed in the window ending at now
func (r *Rate) FPS(now time.Time) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trim(now)
	return float64(len(r.stamps)) / r.window.Seconds()
}

func (r *Rate) trim(now time.Time) {
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(r.stamps) && !r.stamps[i].After(cutoff) {
		i++
	}
	r.stamps = r.stamps[i:]
}

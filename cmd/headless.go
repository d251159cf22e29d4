package cmd

import (
	"time"

	"github.com/iburimskiy/neural-backdrop/internal/clock"
	"github.com/iburimskiy/neural-backdrop/internal/frame"
	"github.com/iburimskiy/neural-backdrop/internal/particles"
	"github.com/iburimskiy/neural-backdrop/internal/viewport"
)

// epoch is the logical start time of headless runs, so a fixed seed
// always yields the same frames.
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// headlessRun paints frames onto canvas with a logical clock that moves one
// frame interval per frame.
func headlessRun(s particles.Settings, canvas particles.Canvas, w, h, frames int, interval time.Duration) (*particles.Renderer, error) {
	clk := clock.NewMock(epoch)
	manual := frame.NewManual()
	sched := frame.Then(manual, func() { clk.Advance(interval) })

	r, err := particles.New(s, canvas, viewport.NewBroadcast(w, h), sched, clk)
	if err != nil {
		return nil, err
	}
	if !r.Mount() {
		return nil, particles.ErrNoContext
	}
	manual.Tick(frames)
	return r, nil
}

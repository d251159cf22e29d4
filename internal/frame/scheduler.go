// Package frame schedules per-frame work.
//
// A Scheduler models the browser's "run this step, then ask to be called
// again before the next repaint" loop as a cancellable periodic task, so
// the loop can be started and stopped deterministically.
package frame

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is one display refresh at 60 Hz
const DefaultInterval = time.Second / 60

// Scheduler runs step once per frame until the returned cancel is called.
// cancel is idempotent and, once it returns, step is not running and will
// not run again.
type Scheduler interface {
	Schedule(step func()) (cancel func())
}

// Ticker drives steps from a time.Ticker on its own goroutine
type Ticker struct {
	Interval time.Duration
}

// NewTicker creates a ticker scheduler; non-positive intervals use DefaultInterval
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{Interval: interval}
}

// Schedule starts a loop calling step every Interval
func (t *Ticker) Schedule(step func()) func() {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	task := &tickerTask{stop: make(chan struct{})}
	task.wg.Add(1)
	go task.loop(interval, step)
	return task.cancel
}

type tickerTask struct {
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func (tt *tickerTask) loop(interval time.Duration, step func()) {
	defer tt.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-tt.stop:
			return
		case <-ticker.C:
			// A stop that raced with the tick wins
			select {
			case <-tt.stop:
				return
			default:
			}
			step()
		}
	}
}

func (tt *tickerTask) cancel() {
	tt.stopOnce.Do(func() {
		close(tt.stop)
	})
	tt.wg.Wait()
}

// Manual runs the registered step only when Tick is called.
// Used by tests and by hosts that own their refresh signal (ebiten's Update).
type Manual struct {
	mu    sync.Mutex
	step  func()
	gen   uint64
	ticks atomic.Uint64
}

// NewManual creates an idle manual scheduler
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers step, replacing any previous registration
func (m *Manual) Schedule(step func()) func() {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.step = step
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen == gen {
			m.step = nil
		}
	}
}

// Tick runs the registered step n times and returns how many ran
func (m *Manual) Tick(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		m.mu.Lock()
		step := m.step
		m.mu.Unlock()
		if step == nil {
			break
		}
		step()
		m.ticks.Add(1)
		ran++
	}
	return ran
}

// Active reports whether a step is registered
func (m *Manual) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step != nil
}

// Ticks returns the total number of steps run
func (m *Manual) Ticks() uint64 {
	return m.ticks.Load()
}

// Then wraps s so that after runs right after every step, on the same goroutine.
// Hosts use it to present a frame (screen.Show) or fan it out to viewers.
func Then(s Scheduler, after func()) Scheduler {
	return thenScheduler{inner: s, after: after}
}

type thenScheduler struct {
	inner Scheduler
	after func()
}

func (t thenScheduler) Schedule(step func()) func() {
	return t.inner.Schedule(func() {
		step()
		t.after()
	})
}

// Locked wraps s so that every step runs while holding l. Readers that take
// l never observe a half-drawn frame.
func Locked(s Scheduler, l sync.Locker) Scheduler {
	return lockedScheduler{inner: s, l: l}
}

type lockedScheduler struct {
	inner Scheduler
	l     sync.Locker
}

func (ls lockedScheduler) Schedule(step func()) func() {
	return ls.inner.Schedule(func() {
		ls.l.Lock()
		defer ls.l.Unlock()
		step()
	})
}

package clock

import (
	"sync"
	"time"
)

// Clock supplies the time used for the pulse phase
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// Now returns time.Now()
func (System) Now() time.Time {
	return time.Now()
}

// Mock provides a controllable time source for tests and headless renders
type Mock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMock creates a mock clock stopped at start
func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the clock to t
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

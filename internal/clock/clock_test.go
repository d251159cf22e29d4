package clock

import (
	"testing"
	"time"
)

func TestSystemClock(t *testing.T) {
	var c Clock = System{}

	t1 := c.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := c.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	if got := m.Now(); !got.Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, got)
	}

	m.Advance(16 * time.Millisecond)
	if got, want := m.Now(), start.Add(16*time.Millisecond); !got.Equal(want) {
		t.Errorf("Expected %v after Advance, got %v", want, got)
	}

	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m.Set(later)
	if got := m.Now(); !got.Equal(later) {
		t.Errorf("Expected %v after Set, got %v", later, got)
	}
}

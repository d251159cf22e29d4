package viewport

import "testing"

func TestBroadcastResizeNotifiesInOrder(t *testing.T) {
	vp := NewBroadcast(800, 600)

	var order []string
	vp.OnResize(func(w, h int) { order = append(order, "a") })
	vp.OnResize(func(w, h int) { order = append(order, "b") })

	vp.Resize(1200, 900)

	if w, h := vp.Size(); w != 1200 || h != 900 {
		t.Errorf("Expected size 1200x900, got %dx%d", w, h)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Expected subscribers notified a then b, got %v", order)
	}
}

func TestBroadcastUnsubscribe(t *testing.T) {
	vp := NewBroadcast(10, 10)

	calls := 0
	unsub := vp.OnResize(func(w, h int) { calls++ })
	keep := 0
	vp.OnResize(func(w, h int) { keep++ })

	vp.Resize(20, 20)
	unsub()
	unsub()
	vp.Resize(30, 30)

	if calls != 1 {
		t.Errorf("Expected 1 call before unsubscribe, got %d", calls)
	}
	if keep != 2 {
		t.Errorf("Expected remaining subscriber to see 2 resizes, got %d", keep)
	}
	if n := vp.Subscribers(); n != 1 {
		t.Errorf("Expected 1 subscriber left, got %d", n)
	}
}

func TestBroadcastInstancesAreIndependent(t *testing.T) {
	a := NewBroadcast(1, 1)
	b := NewBroadcast(1, 1)

	hits := 0
	a.OnResize(func(w, h int) { hits++ })
	b.Resize(5, 5)

	if hits != 0 {
		t.Errorf("Expected resize on b not to reach a's subscriber, got %d hits", hits)
	}
}

func TestUnsubscribeDuringResize(t *testing.T) {
	vp := NewBroadcast(1, 1)

	var unsub func()
	calls := 0
	unsub = vp.OnResize(func(w, h int) {
		calls++
		unsub()
	})

	vp.Resize(2, 2)
	vp.Resize(3, 3)

	if calls != 1 {
		t.Errorf("Expected self-unsubscribing listener to run once, got %d", calls)
	}
}

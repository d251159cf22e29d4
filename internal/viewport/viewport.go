// Package viewport publishes the size of the area a renderer fills.
package viewport

import "sync"

// Viewport exposes the current size and a scoped resize subscription
type Viewport interface {
	Size() (w, h int)
	OnResize(fn func(w, h int)) (unsubscribe func())
}

// Broadcast is a Viewport whose size is pushed in by the host
// (window layout, terminal resize event, HTTP query)
type Broadcast struct {
	mu     sync.RWMutex
	width  int
	height int
	nextID uint64
	subs   []subscriber
}

type subscriber struct {
	id uint64
	fn func(w, h int)
}

// NewBroadcast creates a viewport with the given initial size
func NewBroadcast(w, h int) *Broadcast {
	return &Broadcast{width: w, height: h}
}

// Size returns the current size
func (b *Broadcast) Size() (int, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width, b.height
}

// OnResize registers fn; the returned func removes it and is safe to call twice
func (b *Broadcast) OnResize(fn func(w, h int)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Resize records the new size and notifies subscribers in subscription order.
// Every call is delivered, including repeats of the current size; listeners
// decide whether a repeat matters.
func (b *Broadcast) Resize(w, h int) {
	b.mu.Lock()
	b.width, b.height = w, h
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(w, h)
	}
}

// Subscribers returns the number of live subscriptions
func (b *Broadcast) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

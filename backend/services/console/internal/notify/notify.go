// Package notify holds an ordered set of synchronous listeners.
package notify

import "sync"

type entry[T any] struct {
	fn func(T)
}

// Listeners calls registered functions in registration order.
type Listeners[T any] struct {
	mu      sync.Mutex
	entries []*entry[T]
}

// Subscribe registers fn and returns a function that removes it.
func (l *Listeners[T]) Subscribe(fn func(T)) func() {
	e := &entry[T]{fn: fn}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, candidate := range l.entries {
				if candidate == e {
					l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every listener with v. Listeners may subscribe or unsubscribe while being called.
func (l *Listeners[T]) Publish(v T) {
	l.mu.Lock()
	snapshot := make([]*entry[T], len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

// Len returns the number of listeners.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

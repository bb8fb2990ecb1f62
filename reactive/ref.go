// Package reactive provides a shallow, observable single value cell.
//
// A Ref starts out indeterminate: it holds the zero value of T and Get
// reports false until the first Set. Every Set notifies watchers, even when
// the new value equals the previous one.
package reactive

import (
	"sync"
)

// Ref is a shallow reactive value holder.
type Ref[T any] struct {
	mu       sync.RWMutex
	value    T
	loaded   bool
	version  uint64
	changed  chan struct{}
	watchers []*watcher[T]
	nextID   uint64
}

type watcher[T any] struct {
	id uint64
	fn func(T)
}

// NewRef returns an indeterminate Ref.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{changed: make(chan struct{})}
}

// NewRefOf returns a Ref that already holds value.
func NewRefOf[T any](value T) *Ref[T] {
	r := NewRef[T]()
	r.value = value
	r.loaded = true
	return r
}

// Get returns the current value and whether it has ever been set.
func (r *Ref[T]) Get() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.loaded
}

// Value returns the current value, the zero value while indeterminate.
func (r *Ref[T]) Value() T {
	v, _ := r.Get()
	return v
}

// Loaded reports whether the Ref has left the indeterminate state.
func (r *Ref[T]) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Version counts writes.
func (r *Ref[T]) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Set stores value and notifies watchers in registration order.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	r.value = value
	r.loaded = true
	r.version++
	done := r.changed
	r.changed = make(chan struct{})
	watchers := make([]*watcher[T], len(r.watchers))
	copy(watchers, r.watchers)
	r.mu.Unlock()

	close(done)

	// notify outside the lock so watchers may read the ref
	for _, w := range watchers {
		w.fn(value)
	}
}

// Changed returns a channel closed on the next Set.
func (r *Ref[T]) Changed() <-chan struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.changed
}

// Watch calls fn after every Set. The returned function stops the watcher
// and is safe to call more than once.
func (r *Ref[T]) Watch(fn func(T)) (stop func()) {
	if fn == nil {
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	w := &watcher[T]{id: r.nextID, fn: fn}
	r.watchers = append(r.watchers, w)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.unwatch(w.id) })
	}
}

// Watchers returns the number of active watchers.
func (r *Ref[T]) Watchers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

func (r *Ref[T]) unwatch(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.watchers {
		if w.id == id {
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			return
		}
	}
}

package scope

import (
	"context"
	"sync"
)

// UnmountNotifier is implemented by owners that can announce their teardown.
// Global scopes created for such an owner are disposed when it unmounts.
type UnmountNotifier interface {
	OnUnmount(fn func())
}

// pairKey identifies a scope by (provider instance, application instance).
// Both halves must be comparable, typically pointers.
type pairKey struct {
	provider any
	app      any
}

// Registry maps (provider instance, application instance) pairs to scopes.
// It is an explicit value so independent applications never share state.
type Registry struct {
	mu     sync.Mutex
	scopes map[pairKey]*Scope
	parent context.Context
}

// NewRegistry returns an empty Registry. Scope contexts derive from parent.
func NewRegistry(parent context.Context) *Registry {
	if parent == nil {
		parent = context.Background()
	}
	return &Registry{
		scopes: make(map[pairKey]*Scope),
		parent: parent,
	}
}

// Global returns the scope for the pair, creating it on first use.
func (r *Registry) Global(provider, app any) *Scope {
	key := pairKey{provider: provider, app: app}

	r.mu.Lock()
	if s, ok := r.scopes[key]; ok {
		r.mu.Unlock()
		return s
	}
	s := New(r.parent)
	r.scopes[key] = s
	r.mu.Unlock()

	s.OnDispose(func() { r.remove(key, s) })

	if n, ok := app.(UnmountNotifier); ok {
		n.OnUnmount(s.Dispose)
	}

	return s
}

// Lookup returns the scope for the pair without creating it.
func (r *Registry) Lookup(provider, app any) (*Scope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scopes[pairKey{provider: provider, app: app}]
	return s, ok
}

// Len returns the number of live scopes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

// DisposeAll disposes every live scope.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	scopes := make([]*Scope, 0, len(r.scopes))
	for _, s := range r.scopes {
		scopes = append(scopes, s)
	}
	r.mu.Unlock()

	for _, s := range scopes {
		s.Dispose()
	}
}

func (r *Registry) remove(key pairKey, s *Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.scopes[key]; ok && current == s {
		delete(r.scopes, key)
	}
}

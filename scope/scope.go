// Package scope provides disposal tracking execution contexts.
//
// A Scope collects cleanup actions and runs each of them exactly once when
// the scope is disposed. Code running inside a scope finds it through the
// context.Context passed to Run, so there is no ambient "current scope".
package scope

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrScopeDisposed is returned when running a function in a disposed scope.
var ErrScopeDisposed = errors.New("scope disposed")

// Scope is a disposal tracking execution context.
type Scope struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	cleanups []func()
	disposed bool
}

// New creates a standalone Scope. The scope context is derived from parent
// so cancelling parent does not dispose the scope, but the scope context
// will report parent cancellation.
func New(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Scope{
		id:     uuid.New(),
		cancel: cancel,
	}
	s.ctx = WithScope(ctx, s)
	return s
}

// ID returns the scope identifier.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Context returns a context carrying this scope. It is cancelled on Dispose.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Run calls fn now with a context that carries this scope, so cleanups
// registered through OnDispose(ctx, ...) attach to it. The scope context
// values are layered on top of ctx.
func (s *Scope) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.Disposed() {
		return ErrScopeDisposed
	}
	if ctx == nil {
		ctx = s.ctx
	} else {
		ctx = WithScope(ctx, s)
	}
	return fn(ctx)
}

// OnDispose registers fn to run when the scope is disposed. When the scope
// is already disposed fn runs immediately.
func (s *Scope) OnDispose(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Dispose runs registered cleanups in reverse order. Later calls are no-ops.
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	s.cancel()
}

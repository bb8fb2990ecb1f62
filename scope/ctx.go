package scope

import "context"

var scopeCtxKey = &contextKey{"scope"}

type contextKey struct {
	name string
}

// WithScope sets the Scope in the given context
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey, s)
}

// FromContext finds the Scope in the context.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(scopeCtxKey).(*Scope)
	return s, ok && s != nil
}

// OnDispose registers fn on the scope found in ctx. It returns false when
// ctx carries no scope, in which case fn is not registered.
func OnDispose(ctx context.Context, fn func()) bool {
	s, ok := FromContext(ctx)
	if !ok {
		return false
	}
	s.OnDispose(fn)
	return true
}

package host

import "context"

var componentCtxKey = &contextKey{"component"}

type contextKey struct {
	name string
}

// WithComponent sets the Component in the given context
func WithComponent(ctx context.Context, c *Component) context.Context {
	return context.WithValue(ctx, componentCtxKey, c)
}

// ComponentFromContext finds the Component in the context.
func ComponentFromContext(ctx context.Context) (*Component, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(componentCtxKey).(*Component)
	return c, ok && c != nil
}

// InjectFromContext resolves key from the component carried by ctx.
func InjectFromContext(ctx context.Context, key any) (any, bool) {
	c, ok := ComponentFromContext(ctx)
	if !ok {
		return nil, false
	}
	return c.Inject(key)
}

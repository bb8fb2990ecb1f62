package host

import (
	"context"
	"sync"
)

// Injector resolves injected values.
type Injector interface {
	Inject(key any) (any, bool)
}

// Component is a node in an App's component tree.
type Component struct {
	app    *App
	parent *Component
	name   string

	mu       sync.RWMutex
	provides map[any]any
}

var _ Injector = (*Component)(nil)
var _ Injector = (*App)(nil)

// App returns the owning App.
func (c *Component) App() *App {
	return c.app
}

// Parent returns the parent component, nil for the root.
func (c *Component) Parent() *Component {
	return c.parent
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// NewChild creates a child component.
func (c *Component) NewChild(name string) *Component {
	return &Component{
		app:    c.app,
		parent: c,
		name:   name,
	}
}

// Provide registers value under key for this component and its descendants.
func (c *Component) Provide(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provides == nil {
		c.provides = make(map[any]any)
	}
	c.provides[key] = value
}

// Inject walks up the tree and returns the nearest value for key.
func (c *Component) Inject(key any) (any, bool) {
	for node := c; node != nil; node = node.parent {
		node.mu.RLock()
		v, ok := node.provides[key]
		node.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Context returns a context carrying this component.
func (c *Component) Context(parent context.Context) context.Context {
	if parent == nil {
		parent = c.app.ctx
	}
	return WithComponent(parent, c)
}

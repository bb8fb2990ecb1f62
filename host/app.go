// Package host is the application side of the binding: an App that owns a
// component tree, a per-application injection registry and a plugin
// installation entry point.
//
// Values provided on the App or on a Component are visible to every
// descendant Component through Inject. Lookups for keys that were never
// provided return (nil, false).
package host

import (
	"context"
	"sync"

	"github.com/goliatone/go-authstate/scope"
	"github.com/google/uuid"
)

// Plugin is installed into an App through App.Use.
type Plugin interface {
	Install(app *App) error
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(app *App) error

// Install implements Plugin.
func (f PluginFunc) Install(app *App) error {
	if f == nil {
		return nil
	}
	return f(app)
}

// Option configures an App.
type Option func(*App)

// WithName sets a human readable name, used in logs only.
func WithName(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// WithScopeRegistry shares a scope registry between apps.
func WithScopeRegistry(reg *scope.Registry) Option {
	return func(a *App) {
		if reg != nil {
			a.scopes = reg
		}
	}
}

// WithContext sets the parent context of the root component.
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// App is a host application instance.
type App struct {
	id     uuid.UUID
	name   string
	ctx    context.Context
	scopes *scope.Registry
	root   *Component

	mu        sync.Mutex
	unmounts  []func()
	unmounted bool
	installed int
}

// New creates an App with its own scope registry unless one is given.
func New(opts ...Option) *App {
	a := &App{
		id:  uuid.New(),
		ctx: context.Background(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.scopes == nil {
		a.scopes = scope.NewRegistry(a.ctx)
	}

	a.root = &Component{app: a, name: "root"}
	return a
}

// ID returns the app identifier.
func (a *App) ID() uuid.UUID {
	return a.id
}

// Name returns the app name.
func (a *App) Name() string {
	return a.name
}

// Scopes returns the scope registry used by this app.
func (a *App) Scopes() *scope.Registry {
	return a.scopes
}

// Root returns the root component.
func (a *App) Root() *Component {
	return a.root
}

// Context returns a context carrying the root component.
func (a *App) Context() context.Context {
	return WithComponent(a.ctx, a.root)
}

// Provide registers value under key for every component of this app.
// Providing the same key again replaces the previous value.
func (a *App) Provide(key, value any) *App {
	a.root.Provide(key, value)
	return a
}

// Inject resolves key at the app level.
func (a *App) Inject(key any) (any, bool) {
	return a.root.Inject(key)
}

// Use installs the plugin. Every call installs again; plugins that must be
// installed once are expected to be used once.
func (a *App) Use(p Plugin) error {
	if p == nil {
		return nil
	}
	if err := p.Install(a); err != nil {
		return err
	}
	a.mu.Lock()
	a.installed++
	a.mu.Unlock()
	return nil
}

// Installed returns how many plugin installs succeeded.
func (a *App) Installed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.installed
}

// OnUnmount registers fn to run when the app is unmounted. Registering on an
// unmounted app runs fn immediately.
func (a *App) OnUnmount(fn func()) {
	if fn == nil {
		return
	}

	a.mu.Lock()
	if a.unmounted {
		a.mu.Unlock()
		fn()
		return
	}
	a.unmounts = append(a.unmounts, fn)
	a.mu.Unlock()
}

// Unmount tears the app down, running unmount hooks once in reverse order.
func (a *App) Unmount() {
	a.mu.Lock()
	if a.unmounted {
		a.mu.Unlock()
		return
	}
	a.unmounted = true
	hooks := a.unmounts
	a.unmounts = nil
	a.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Unmounted reports whether Unmount has been called.
func (a *App) Unmounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unmounted
}

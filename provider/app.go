package provider

import (
	"sort"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultAppName is used when no name is given.
const DefaultAppName = "[DEFAULT]"

// App is a configured provider application handle.
type App struct {
	id      uuid.UUID
	name    string
	options Options

	mu      sync.Mutex
	auth    *Auth
	deleted bool
}

// ID returns the app identifier.
func (a *App) ID() uuid.UUID {
	return a.id
}

// Name returns the app name.
func (a *App) Name() string {
	return a.name
}

// Options returns the options the app was initialized with.
func (a *App) Options() Options {
	return a.options
}

// Registry holds initialized apps by name.
type Registry struct {
	mu   sync.RWMutex
	apps map[string]*App
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{apps: make(map[string]*App)}
}

func appName(name []string) string {
	if len(name) == 0 || name[0] == "" {
		return DefaultAppName
	}
	return name[0]
}

// InitializeApp creates and registers an app. Options are validated lazily
// by GetAuth, mirroring provider SDKs that only fail on first use.
func (r *Registry) InitializeApp(opts Options, name ...string) (*App, error) {
	n := appName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[n]; ok {
		return nil, goerrors.Wrap(ErrDuplicateApp, ErrDuplicateApp.Category, ErrDuplicateApp.Message).
			WithTextCode(ErrDuplicateApp.TextCode).
			WithMetadata(map[string]any{"app": n})
	}

	app := &App{
		id:      uuid.New(),
		name:    n,
		options: opts,
	}
	r.apps[n] = app
	return app, nil
}

// GetApp returns the named app, or the default app when name is omitted.
func (r *Registry) GetApp(name ...string) (*App, error) {
	n := appName(name)

	r.mu.RLock()
	app, ok := r.apps[n]
	r.mu.RUnlock()

	if !ok {
		return nil, goerrors.Wrap(ErrAppNotFound, ErrAppNotFound.Category, ErrAppNotFound.Message).
			WithTextCode(ErrAppNotFound.TextCode).
			WithMetadata(map[string]any{"app": n})
	}
	return app, nil
}

// Apps returns the registered app names, sorted.
func (r *Registry) Apps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.apps))
	for n := range r.apps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DeleteApp removes the app and shuts its Auth down, releasing listeners.
func (r *Registry) DeleteApp(name ...string) error {
	n := appName(name)

	r.mu.Lock()
	app, ok := r.apps[n]
	if ok {
		delete(r.apps, n)
	}
	r.mu.Unlock()

	if !ok {
		return ErrAppNotFound
	}

	app.mu.Lock()
	app.deleted = true
	auth := app.auth
	app.mu.Unlock()

	if auth != nil {
		auth.shutdown()
	}
	return nil
}

// GetAuth returns the Auth for app, creating it on first call. Invalid app
// options are reported here.
func GetAuth(app *App) (*Auth, error) {
	if app == nil {
		return nil, ErrAppNotFound
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.deleted {
		return nil, ErrAppDeleted
	}
	if app.auth != nil {
		return app.auth, nil
	}

	if err := app.options.Validate(); err != nil {
		return nil, err
	}

	app.auth = newAuth(app)
	return app.auth, nil
}

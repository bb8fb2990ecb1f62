package host

import "fmt"

// InjectionKey is a typed, well-known identifier for injected values.
// Keys compare by pointer identity, so two keys with the same name never
// collide.
type InjectionKey[T any] struct {
	name string
}

// NewInjectionKey returns a new key.
func NewInjectionKey[T any](name string) *InjectionKey[T] {
	return &InjectionKey[T]{name: name}
}

func (k *InjectionKey[T]) String() string {
	return fmt.Sprintf("InjectionKey(%s)", k.name)
}

// Provider is anything values can be provided on.
type Provider interface {
	Provide(key, value any)
}

type appProvider struct{ app *App }

func (p appProvider) Provide(key, value any) { p.app.Provide(key, value) }

// AppProvider adapts an App to Provider.
func AppProvider(app *App) Provider {
	return appProvider{app: app}
}

// ProvideValue provides a typed value.
func ProvideValue[T any](p Provider, key *InjectionKey[T], value T) {
	p.Provide(key, value)
}

// InjectValue resolves a typed value. It reports false when nothing was
// provided or the stored value has a different type.
func InjectValue[T any](i Injector, key *InjectionKey[T]) (T, bool) {
	var zero T
	if i == nil {
		return zero, false
	}
	raw, ok := i.Inject(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

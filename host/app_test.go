package host_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-authstate/host"
	"github.com/goliatone/go-authstate/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectDefaultsWhenAbsent(t *testing.T) {
	app := host.New()

	v, ok := app.Root().NewChild("leaf").Inject("missing")
	assert.Nil(t, v)
	assert.False(t, ok)
}

func TestInjectFromAnyDescendant(t *testing.T) {
	app := host.New(host.WithName("test"))
	app.Provide("theme", "dark")

	child := app.Root().NewChild("layout")
	grandchild := child.NewChild("button")

	v, ok := grandchild.Inject("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, "test", app.Name())
	assert.Same(t, app, grandchild.App())
	assert.Same(t, child, grandchild.Parent())
}

func TestComponentProvideShadowsParent(t *testing.T) {
	app := host.New()
	app.Provide("theme", "dark")

	child := app.Root().NewChild("panel")
	child.Provide("theme", "light")
	sibling := app.Root().NewChild("sidebar")

	v, _ := child.NewChild("inner").Inject("theme")
	assert.Equal(t, "light", v)

	v, _ = sibling.Inject("theme")
	assert.Equal(t, "dark", v)
}

func TestTypedInjection(t *testing.T) {
	key := host.NewInjectionKey[int]("counter")
	other := host.NewInjectionKey[int]("counter")

	app := host.New()
	root := app.Root()
	host.ProvideValue[int](root, key, 7)

	v, ok := host.InjectValue(root.NewChild("c"), key)
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = host.InjectValue(root, other)
	assert.False(t, ok, "keys compare by identity, not name")

	_, ok = host.InjectValue[int](nil, key)
	assert.False(t, ok)

	host.ProvideValue[int](host.AppProvider(app), key, 9)
	v, _ = host.InjectValue(app, key)
	assert.Equal(t, 9, v)
	assert.Contains(t, key.String(), "counter")
}

func TestInjectValueWrongType(t *testing.T) {
	key := host.NewInjectionKey[string]("name")
	app := host.New()
	app.Provide(key, 42)

	_, ok := host.InjectValue(app, key)
	assert.False(t, ok)
}

func TestContextThreading(t *testing.T) {
	app := host.New(host.WithContext(context.Background()))
	app.Provide("k", "v")

	child := app.Root().NewChild("child")
	ctx := child.Context(nil)

	found, ok := host.ComponentFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, child, found)

	v, ok := host.InjectFromContext(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok = host.InjectFromContext(context.Background(), "k")
	assert.False(t, ok)

	rootCtx := app.Context()
	found, ok = host.ComponentFromContext(rootCtx)
	require.True(t, ok)
	assert.Same(t, app.Root(), found)
}

func TestUseInstallsEveryTime(t *testing.T) {
	app := host.New()
	calls := 0
	plugin := host.PluginFunc(func(a *host.App) error {
		calls++
		assert.Same(t, app, a)
		return nil
	})

	require.NoError(t, app.Use(plugin))
	require.NoError(t, app.Use(plugin))
	require.NoError(t, app.Use(nil))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, app.Installed())
}

func TestUsePropagatesPluginError(t *testing.T) {
	app := host.New()
	boom := errors.New("boom")

	err := app.Use(host.PluginFunc(func(*host.App) error { return boom }))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, app.Installed())
}

func TestUnmountRunsHooksOnce(t *testing.T) {
	app := host.New()

	var order []int
	app.OnUnmount(func() { order = append(order, 1) })
	app.OnUnmount(func() { order = append(order, 2) })

	app.Unmount()
	app.Unmount()

	assert.Equal(t, []int{2, 1}, order)
	assert.True(t, app.Unmounted())

	late := false
	app.OnUnmount(func() { late = true })
	assert.True(t, late)
}

func TestUnmountDisposesGlobalScopes(t *testing.T) {
	reg := scope.NewRegistry(context.Background())
	app := host.New(host.WithScopeRegistry(reg))
	provider := &struct{}{}

	s := app.Scopes().Global(provider, app)
	require.Same(t, reg, app.Scopes())

	app.Unmount()

	assert.True(t, s.Disposed())
	assert.Equal(t, 0, reg.Len())
}

package authstate

import (
	"context"

	"github.com/goliatone/go-authstate/host"
	"github.com/goliatone/go-authstate/provider"
	"github.com/goliatone/go-authstate/reactive"
	"github.com/goliatone/go-authstate/scope"
)

// CurrentUserKey is the injection key of the current user cell.
var CurrentUserKey = host.NewInjectionKey[*reactive.Ref[*provider.User]]("authstate.currentUser")

// SetupOnAuthStateChanged writes every user reported by auth into user. The
// subscription is released when the scope carried by ctx is disposed.
//
// Without a scope in ctx the subscription is released right away and
// ErrNoActiveScope is returned.
func SetupOnAuthStateChanged(ctx context.Context, user *reactive.Ref[*provider.User], auth provider.StateNotifier) error {
	if user == nil {
		return ErrNilCell
	}
	if auth == nil {
		return provider.ErrNoIdentityProvider
	}

	unsubscribe, err := auth.OnAuthStateChanged(func(u *provider.User) {
		user.Set(u)
	})
	if err != nil {
		return err
	}

	if !scope.OnDispose(ctx, unsubscribe) {
		unsubscribe()
		getLogger().Warn("auth state subscription created outside a scope, released")
		return ErrNoActiveScope
	}

	getLogger().Debug("auth state subscription bound to scope")
	return nil
}

// UseCurrentUser returns the current user cell visible from i, or nil when
// the auth module was not installed.
func UseCurrentUser(i host.Injector) *reactive.Ref[*provider.User] {
	ref, ok := host.InjectValue(i, CurrentUserKey)
	if !ok {
		return nil
	}
	return ref
}

// IsCurrentUserLoaded reports whether the provider has reported a state.
func IsCurrentUserLoaded(i host.Injector) bool {
	ref := UseCurrentUser(i)
	return ref != nil && ref.Loaded()
}

// WaitForCurrentUser blocks until the cell visible from i leaves the
// indeterminate state or ctx is done. A nil user means signed out.
func WaitForCurrentUser(ctx context.Context, i host.Injector) (*provider.User, error) {
	ref := UseCurrentUser(i)
	if ref == nil {
		return nil, ErrAuthModuleNotInstalled
	}

	for {
		changed := ref.Changed()
		if u, ok := ref.Get(); ok {
			return u, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// CurrentUserFromContext reads the cell of the component carried by ctx.
// It reports false when there is no component, no cell or the state is
// still indeterminate.
func CurrentUserFromContext(ctx context.Context) (*provider.User, bool) {
	c, ok := host.ComponentFromContext(ctx)
	if !ok {
		return nil, false
	}
	ref := UseCurrentUser(c)
	if ref == nil {
		return nil, false
	}
	return ref.Get()
}

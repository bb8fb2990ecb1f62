package authstate

import (
	"github.com/goliatone/go-authstate/provider"
)

// UseAuth returns the Auth instance of the app registered under name, or
// of the default app when name is omitted.
func UseAuth(apps *provider.Registry, name ...string) (*provider.Auth, error) {
	if apps == nil {
		return nil, provider.ErrAppNotFound
	}
	app, err := apps.GetApp(name...)
	if err != nil {
		return nil, err
	}
	return provider.GetAuth(app)
}

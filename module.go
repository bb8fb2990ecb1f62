package authstate

import (
	"context"

	"github.com/goliatone/go-authstate/host"
	"github.com/goliatone/go-authstate/provider"
	"github.com/goliatone/go-authstate/reactive"
)

const misuseWarning = `Did you forget to call the AuthModule function? It should look like
Modules: []authstate.ModuleFunc{authstate.AuthModule()}`

// ModuleFunc installs a module for a provider app into a host app.
type ModuleFunc func(app *provider.App, h *host.App) error

// AuthModule returns the module that keeps CurrentUserKey in sync with the
// provider session. It takes no arguments: anything passed is reported as a
// likely misuse and ignored.
func AuthModule(app ...any) ModuleFunc {
	if !productionBuild {
		for _, arg := range app {
			if arg != nil {
				getLogger().Warn(misuseWarning, "arg", arg)
				break
			}
		}
	}

	return func(app *provider.App, h *host.App) error {
		if h == nil {
			return ErrNilHostApp
		}

		s := h.Scopes().Global(app, h)

		return s.Run(h.Context(), func(ctx context.Context) error {
			auth, err := provider.GetAuth(app)
			if err != nil {
				return err
			}

			// provided before subscribing so the first notification is visible
			user := reactive.NewRef[*provider.User]()
			host.ProvideValue(h.Root(), CurrentUserKey, user)

			return SetupOnAuthStateChanged(ctx, user, auth)
		})
	}
}

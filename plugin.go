package authstate

import (
	"github.com/goliatone/go-authstate/host"
	"github.com/goliatone/go-authstate/provider"
)

// ProviderAppKey is the injection key of the provider app a Plugin installs.
var ProviderAppKey = host.NewInjectionKey[*provider.App]("authstate.app")

// Plugin provides App to the host and installs Modules in order.
type Plugin struct {
	App     *provider.App
	Modules []ModuleFunc
}

var _ host.Plugin = Plugin{}

// NewPlugin returns a Plugin for app.
func NewPlugin(app *provider.App, modules ...ModuleFunc) Plugin {
	return Plugin{App: app, Modules: modules}
}

// Install implements host.Plugin. It stops at the first module error.
func (p Plugin) Install(h *host.App) error {
	if h == nil {
		return ErrNilHostApp
	}
	if p.App == nil {
		return ErrNilProviderApp
	}

	host.ProvideValue(h.Root(), ProviderAppKey, p.App)

	for _, module := range p.Modules {
		if module == nil {
			continue
		}
		if err := module(p.App, h); err != nil {
			getLogger().Error("auth module install failed", "app", p.App.Name(), "error", err)
			return err
		}
	}

	getLogger().Info("auth modules installed", "app", p.App.Name(), "host", h.Name(), "modules", len(p.Modules))
	return nil
}

// UseProviderApp returns the provider app installed by a Plugin.
func UseProviderApp(i host.Injector) (*provider.App, bool) {
	return host.InjectValue(i, ProviderAppKey)
}

package authstate

import "errors"

// ErrNoActiveScope is returned when subscribing outside a scope, since the
// listener could never be released.
var ErrNoActiveScope = errors.New("authstate: no active scope in context")

// ErrNilCell is returned when SetupOnAuthStateChanged gets no cell.
var ErrNilCell = errors.New("authstate: current user cell must not be nil")

// ErrNilHostApp is returned when a module is installed without a host app.
var ErrNilHostApp = errors.New("authstate: host app must not be nil")

// ErrNilProviderApp is returned when the plugin has no provider app.
var ErrNilProviderApp = errors.New("authstate: provider app must not be nil")

// ErrAuthModuleNotInstalled is returned by lookups when no current user
// cell was provided.
var ErrAuthModuleNotInstalled = errors.New("authstate: auth module not installed")

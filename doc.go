// Package authstate binds an authentication provider's session state to a
// host application.
//
// Installing AuthModule creates one reactive current-user cell per
// (provider app, host app) pair, provides it under CurrentUserKey and keeps
// it in sync with the provider's session notifications:
//
//	app := host.New()
//	err := app.Use(authstate.NewPlugin(providerApp, authstate.AuthModule()))
//
//	user := authstate.UseCurrentUser(component)
//	u, loaded := user.Get()
//
// Cell states:
//   - indeterminate: Get reports false; the provider has not reported yet.
//   - signed out: Get reports (nil, true).
//   - signed in: Get reports the provider.User.
//
// The subscription is released when the scope for the pair is disposed,
// which happens when the host app unmounts. There is no other teardown path.
//
// Misuse guard:
//   - AuthModule takes no arguments. Passing one, e.g. a provider app, logs a
//     warning in builds without the production tag and is otherwise ignored.
package authstate

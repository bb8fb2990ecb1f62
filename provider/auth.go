package provider

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auth tracks the signed-in user of one App and notifies listeners on
// every session change.
//
// Notifications are delivered one at a time, in the order the changes
// happen, by the goroutine that caused them. Listeners may subscribe, sign
// in or sign out from inside a callback: the resulting notifications are
// queued and delivered after the running callback returns. A change made
// while another goroutine is delivering is handed to that goroutine.
type Auth struct {
	app        *App
	tokens     *TokenService
	store      TokenStore
	identities IdentityProvider
	activity   ActivitySink
	logger     Logger

	mu        sync.Mutex
	current   *User
	token     string
	ready     bool
	closed    bool
	listeners []*listener
	nextID    uint64

	// pending notifications, drained by a single goroutine at a time
	queue      []delivery
	delivering bool
}

type delivery struct {
	l    *listener
	user *User
}

type listener struct {
	id     uint64
	fn     func(*User)
	active atomic.Bool
}

var _ StateNotifier = (*Auth)(nil)

func newAuth(app *App) *Auth {
	opts := app.options
	logger := normalizeLogger(opts.Logger)

	store := opts.Persistence
	if store == nil {
		store = NewMemoryStore()
	}

	return &Auth{
		app:        app,
		tokens:     NewTokenService([]byte(opts.APIKey), opts.tokenTTL(), opts.ProjectID, opts.Audience, logger),
		store:      store,
		identities: opts.Identities,
		activity:   normalizeActivitySink(opts.Activity),
		logger:     logger,
	}
}

// App returns the owning app.
func (a *Auth) App() *App {
	return a.app
}

// TokenService returns the token service used to mint session tokens.
func (a *Auth) TokenService() *TokenService {
	return a.tokens
}

// CurrentUser returns the signed-in user, nil when signed out or unknown.
func (a *Auth) CurrentUser() *User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// IDToken returns the current session token, empty when signed out.
func (a *Auth) IDToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// Ready reports whether the session state has been resolved at least once.
func (a *Auth) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready
}

// Listeners returns the number of registered listeners.
func (a *Auth) Listeners() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}

// OnAuthStateChanged registers fn. When the state is already resolved fn
// is called with the current user before this returns, or after the running
// callback when called from inside one.
func (a *Auth) OnAuthStateChanged(fn func(user *User)) (Unsubscribe, error) {
	if fn == nil {
		return nil, ErrNilListener
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrAppDeleted
	}
	a.nextID++
	l := &listener{id: a.nextID, fn: fn}
	l.active.Store(true)
	a.listeners = append(a.listeners, l)
	if a.ready {
		a.queue = append(a.queue, delivery{l: l, user: a.current})
	}
	a.mu.Unlock()

	a.logger.Debug("auth state listener registered", "app", a.app.name, "listener", l.id)

	a.drain()

	var once sync.Once
	return func() {
		once.Do(func() { a.removeListener(l) })
	}, nil
}

// Restore resolves the initial session from the configured TokenStore.
// Invalid or expired persisted tokens resolve to signed out.
func (a *Auth) Restore(ctx context.Context) (*User, error) {
	token, err := a.store.Load(ctx, a.app.name)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load persisted session")
	}

	if token == "" {
		a.setUser(nil, "")
		return nil, nil
	}

	claims, err := a.tokens.Validate(token)
	if err != nil {
		a.logger.Info("discarding persisted session", "app", a.app.name, "error", err)
		if clearErr := a.store.Clear(ctx, a.app.name); clearErr != nil {
			a.logger.Error("failed to clear persisted session", "app", a.app.name, "error", clearErr)
		}
		a.setUser(nil, "")
		return nil, nil
	}

	user := claims.User()
	a.setUser(user, token)
	a.emit(ctx, ActivityEventSessionRestore, user.UID, nil)
	return user, nil
}

// SignInWithPassword verifies the credentials with the configured
// IdentityProvider and starts a session.
func (a *Auth) SignInWithPassword(ctx context.Context, identifier, password string) (*User, error) {
	if a.identities == nil {
		return nil, ErrNoIdentityProvider
	}

	identity, err := a.identities.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		a.logger.Error("sign in verify identity error", "app", a.app.name, "error", err)
		a.emit(ctx, ActivityEventSignInFailure, "", map[string]any{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		a.emit(ctx, ActivityEventSignInFailure, "", map[string]any{
			"identifier": identifier,
			"error":      ErrIdentityNotFound.Error(),
		})
		return nil, ErrIdentityNotFound
	}

	token, claims, err := a.tokens.Generate(identity, SignInMethodPassword)
	if err != nil {
		return nil, err
	}

	return a.startSession(ctx, claims.User(), token)
}

// SignInWithToken starts a session from a token minted by this app's
// TokenService.
func (a *Auth) SignInWithToken(ctx context.Context, token string) (*User, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		a.emit(ctx, ActivityEventSignInFailure, "", map[string]any{"error": err.Error()})
		return nil, err
	}
	return a.startSession(ctx, claims.User(), token)
}

// SignOut ends the session and notifies listeners with nil.
func (a *Auth) SignOut(ctx context.Context) error {
	previous := a.CurrentUser()

	if err := a.store.Clear(ctx, a.app.name); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear persisted session")
	}

	a.setUser(nil, "")

	uid := ""
	if previous != nil {
		uid = previous.UID
	}
	a.emit(ctx, ActivityEventSignOut, uid, nil)
	return nil
}

func (a *Auth) startSession(ctx context.Context, user *User, token string) (*User, error) {
	if err := a.store.Save(ctx, a.app.name, token); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist session")
	}

	a.setUser(user, token)
	a.emit(ctx, ActivityEventSignIn, user.UID, map[string]any{"provider": user.ProviderID})
	return user, nil
}

func (a *Auth) setUser(user *User, token string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.current = user
	a.token = token
	a.ready = true
	for _, l := range a.listeners {
		a.queue = append(a.queue, delivery{l: l, user: user})
	}
	a.mu.Unlock()

	a.drain()
}

// drain delivers queued notifications unless another call is already
// doing so. Listeners run without any Auth lock held.
func (a *Auth) drain() {
	a.mu.Lock()
	if a.delivering {
		a.mu.Unlock()
		return
	}
	a.delivering = true
	a.mu.Unlock()

	finished := false
	defer func() {
		// a panicking listener must not stall later deliveries
		if !finished {
			a.mu.Lock()
			a.delivering = false
			a.mu.Unlock()
		}
	}()

	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			a.delivering = false
			a.mu.Unlock()
			finished = true
			return
		}
		d := a.queue[0]
		a.queue[0] = delivery{}
		a.queue = a.queue[1:]
		a.mu.Unlock()

		if d.l.active.Load() {
			d.l.fn(d.user)
		}
	}
}

func (a *Auth) removeListener(target *listener) {
	target.active.Store(false)

	a.mu.Lock()
	defer a.mu.Unlock()

	for i, l := range a.listeners {
		if l == target {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			break
		}
	}
}

func (a *Auth) shutdown() {
	a.mu.Lock()
	a.closed = true
	listeners := a.listeners
	a.listeners = nil
	a.queue = nil
	a.mu.Unlock()

	for _, l := range listeners {
		l.active.Store(false)
	}
	a.logger.Debug("auth shut down", "app", a.app.name, "listeners", len(listeners))
}

func (a *Auth) emit(ctx context.Context, eventType ActivityEventType, userID string, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		App:        a.app.name,
		UserID:     userID,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}
	if err := a.activity.Record(ctx, event); err != nil {
		a.logger.Error("activity sink error", "event", eventType, "error", err)
	}
}

package authstate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-authstate/provider"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "authstate-signing-key-0123456789"

// fakeNotifier is a StateNotifier driven by the test.
type fakeNotifier struct {
	mu           sync.Mutex
	listeners    map[int]func(*provider.User)
	next         int
	unsubscribed int
	err          error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{listeners: map[int]func(*provider.User){}}
}

func (f *fakeNotifier) OnAuthStateChanged(fn func(*provider.User)) (provider.Unsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.next++
	id := f.next
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed++
		delete(f.listeners, id)
	}, nil
}

func (f *fakeNotifier) emit(u *provider.User) {
	f.mu.Lock()
	fns := make([]func(*provider.User), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

func (f *fakeNotifier) unsubscribeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

func (f *fakeNotifier) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (provider.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(provider.Identity)
	return identity, args.Error(1)
}

type TestIdentity struct {
	id    string
	email string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.id }
func (t TestIdentity) Email() string    { return t.email }
func (t TestIdentity) Role() string     { return "member" }

type logCall struct {
	level   string
	message string
}

type captureLogger struct {
	mu    sync.Mutex
	calls []logCall
}

func (l *captureLogger) record(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, logCall{level: level, message: message})
}

func (l *captureLogger) Debug(message string, args ...any) { l.record("debug", message) }
func (l *captureLogger) Info(message string, args ...any)  { l.record("info", message) }
func (l *captureLogger) Warn(message string, args ...any)  { l.record("warn", message) }
func (l *captureLogger) Error(message string, args ...any) { l.record("error", message) }

func (l *captureLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c.level == level {
			n++
		}
	}
	return n
}

func testOptions(identities provider.IdentityProvider) provider.Options {
	return provider.Options{
		APIKey:     testAPIKey,
		ProjectID:  "authstate-test",
		Identities: identities,
		Logger:     &captureLogger{},
	}
}

func textCode(t *testing.T, err error) string {
	t.Helper()
	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich), "expected rich error, got %T", err)
	return rich.TextCode
}

package provider_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-authstate/provider"
	"github.com/stretchr/testify/mock"
)

const testAPIKey = "test-signing-key-0123456789"

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (provider.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(provider.Identity)
	return identity, args.Error(1)
}

type TestIdentity struct {
	id       string
	username string
	email    string
	role     string
	verified bool
}

func (t TestIdentity) ID() string          { return t.id }
func (t TestIdentity) Username() string    { return t.username }
func (t TestIdentity) Email() string       { return t.email }
func (t TestIdentity) Role() string        { return t.role }
func (t TestIdentity) EmailVerified() bool { return t.verified }

type capturingSink struct {
	mu     sync.Mutex
	events []provider.ActivityEvent
}

func (c *capturingSink) Record(ctx context.Context, evt provider.ActivityEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

func (c *capturingSink) types() []provider.ActivityEventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]provider.ActivityEventType, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.EventType)
	}
	return out
}

type logCall struct {
	level   string
	message string
	args    []any
}

type captureLogger struct {
	mu    sync.Mutex
	calls []logCall
}

func (l *captureLogger) record(level, message string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, logCall{level: level, message: message, args: args})
}

func (l *captureLogger) Debug(message string, args ...any) { l.record("debug", message, args...) }
func (l *captureLogger) Info(message string, args ...any)  { l.record("info", message, args...) }
func (l *captureLogger) Warn(message string, args ...any)  { l.record("warn", message, args...) }
func (l *captureLogger) Error(message string, args ...any) { l.record("error", message, args...) }

func testOptions() provider.Options {
	return provider.Options{
		APIKey:    testAPIKey,
		ProjectID: "test-project",
		Logger:    &captureLogger{},
	}
}

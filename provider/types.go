package provider

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the logging contract used across the module. Messages are
// followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// User is the session subject reported by Auth.
type User struct {
	UID           string         `json:"uid"`
	Email         string         `json:"email,omitempty"`
	DisplayName   string         `json:"display_name,omitempty"`
	Role          string         `json:"role,omitempty"`
	EmailVerified bool           `json:"email_verified,omitempty"`
	ProviderID    string         `json:"provider_id,omitempty"`
	IssuedAt      time.Time      `json:"issued_at,omitempty"`
	ExpiresAt     time.Time      `json:"expires_at,omitempty"`
	Claims        map[string]any `json:"claims,omitempty"`
}

// Unsubscribe stops a listener. Calling it more than once is a no-op.
type Unsubscribe func()

// StateNotifier reports session changes. The callback receives nil when
// nobody is signed in.
type StateNotifier interface {
	OnAuthStateChanged(fn func(user *User)) (Unsubscribe, error)
}

// Identity holds the attributes of an identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
}

// TokenStore persists the signed-in session token per app so a later
// Restore can bring the session back.
type TokenStore interface {
	Load(ctx context.Context, app string) (string, error)
	Save(ctx context.Context, app, token string) error
	Clear(ctx context.Context, app string) error
}

type defLogger struct {
	entry *logrus.Entry
}

// DefaultLogger returns the logrus backed logger used when none is set.
func DefaultLogger() Logger {
	return defLogger{entry: logrus.NewEntry(logrus.StandardLogger()).WithField("component", "authstate")}
}

func (d defLogger) Debug(msg string, args ...any) {
	d.with(args).Debug(msg)
}

func (d defLogger) Info(msg string, args ...any) {
	d.with(args).Info(msg)
}

func (d defLogger) Warn(msg string, args ...any) {
	d.with(args).Warn(msg)
}

func (d defLogger) Error(msg string, args ...any) {
	d.with(args).Error(msg)
}

func (d defLogger) with(args []any) *logrus.Entry {
	if len(args) == 0 {
		return d.entry
	}
	fields := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "arg"
		}
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields["extra"] = args[i]
		}
	}
	return d.entry.WithFields(fields)
}

func normalizeLogger(l Logger) Logger {
	if l == nil {
		return DefaultLogger()
	}
	return l
}

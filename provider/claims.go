package provider

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID           string         `json:"uid,omitempty"`
	Email         string         `json:"email,omitempty"`
	Name          string         `json:"name,omitempty"`
	UserRole      string         `json:"role,omitempty"`
	EmailVerified bool           `json:"email_verified,omitempty"`
	SignInMethod  string         `json:"sign_in_provider,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// UserID returns the user ID
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time
func (c *SessionClaims) Issued() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// User builds the session subject described by the claims.
func (c *SessionClaims) User() *User {
	var claims map[string]any
	if len(c.Metadata) > 0 {
		claims = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			claims[k] = v
		}
	}

	return &User{
		UID:           c.UserID(),
		Email:         c.Email,
		DisplayName:   c.Name,
		Role:          c.UserRole,
		EmailVerified: c.EmailVerified,
		ProviderID:    c.SignInMethod,
		IssuedAt:      c.Issued(),
		ExpiresAt:     c.Expires(),
		Claims:        claims,
	}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

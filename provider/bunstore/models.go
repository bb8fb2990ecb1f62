package bunstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRecord is a user that can sign in with a password.
type UserRecord struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username       string    `bun:"username,notnull,unique" json:"username"`
	Email          string    `bun:"email,notnull,unique" json:"email"`
	Role           string    `bun:"user_role,notnull" json:"user_role"`
	PasswordHash   string    `bun:"password_hash" json:"-"`
	EmailValidated bool      `bun:"is_email_verified" json:"is_email_verified"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// SessionRecord is the persisted session token of one app.
type SessionRecord struct {
	bun.BaseModel `bun:"table:auth_sessions,alias:ses"`
	App           string    `bun:"app,pk" json:"app"`
	Token         string    `bun:"token,notnull" json:"-"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// userIdentity adapts a UserRecord into provider.Identity.
type userIdentity struct {
	user *UserRecord
}

func (u userIdentity) ID() string          { return u.user.ID.String() }
func (u userIdentity) Username() string    { return u.user.Username }
func (u userIdentity) Email() string       { return u.user.Email }
func (u userIdentity) Role() string        { return u.user.Role }
func (u userIdentity) EmailVerified() bool { return u.user.EmailValidated }

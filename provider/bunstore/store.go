// Package bunstore persists session tokens and password identities with
// uptrace/bun. It satisfies provider.TokenStore and
// provider.IdentityProvider so an App can restore sessions across restarts
// and sign users in with a password.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-authstate/provider"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Store is a bun backed TokenStore and IdentityProvider.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

var (
	_ provider.TokenStore       = (*Store)(nil)
	_ provider.IdentityProvider = (*Store)(nil)
)

// New wraps an existing bun.DB.
func New(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// OpenSQLite opens a sqlite database through sqliteshim, which picks a cgo
// or pure Go driver depending on the build.
func OpenSQLite(dsn string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open sqlite database")
	}
	if strings.Contains(dsn, ":memory:") {
		// every connection to :memory: is a new database
		sqldb.SetMaxOpenConns(1)
	}
	return New(bun.NewDB(sqldb, sqlitedialect.New())), nil
}

// DB returns the underlying bun.DB.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema creates the tables if they do not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	models := []any{(*UserRecord)(nil), (*SessionRecord)(nil)}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create schema")
		}
	}
	return nil
}

// Load returns the persisted token for app, empty when none.
func (s *Store) Load(ctx context.Context, app string) (string, error) {
	rec := new(SessionRecord)
	err := s.db.NewSelect().Model(rec).Where("app = ?", app).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load session")
	}
	return rec.Token, nil
}

// Save upserts the token for app.
func (s *Store) Save(ctx context.Context, app, token string) error {
	rec := &SessionRecord{
		App:       app,
		Token:     token,
		UpdatedAt: s.now(),
	}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (app) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save session")
	}
	return nil
}

// Clear deletes the token for app.
func (s *Store) Clear(ctx context.Context, app string) error {
	_, err := s.db.NewDelete().
		Model((*SessionRecord)(nil)).
		Where("app = ?", app).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear session")
	}
	return nil
}

// Register stores a new user with a bcrypt hash of password.
func (s *Store) Register(ctx context.Context, user *UserRecord, password string) (*UserRecord, error) {
	if user == nil {
		return nil, goerrors.New("user must not be nil", goerrors.CategoryBadInput)
	}

	hash, err := provider.HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password")
	}

	now := s.now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "failed to register user")
	}
	return user, nil
}

// FindUser looks a user up by email or username.
func (s *Store) FindUser(ctx context.Context, identifier string) (*UserRecord, error) {
	identifier = strings.TrimSpace(identifier)

	user := new(UserRecord)
	err := s.db.NewSelect().
		Model(user).
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, provider.ErrIdentityNotFound
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to find user")
	}
	return user, nil
}

// VerifyIdentity implements provider.IdentityProvider.
func (s *Store) VerifyIdentity(ctx context.Context, identifier, password string) (provider.Identity, error) {
	user, err := s.FindUser(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := provider.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return userIdentity{user: user}, nil
}

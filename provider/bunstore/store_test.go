package bunstore_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-authstate/provider"
	"github.com/goliatone/go-authstate/provider/bunstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) *bunstore.Store {
	t.Helper()

	provider.PasswordCost = bcrypt.MinCost

	store, err := bunstore.OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.CreateSchema(context.Background()))
	return store
}

func TestTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	token, err := store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(ctx, "app", "first"))
	require.NoError(t, store.Save(ctx, "app", "second"))
	require.NoError(t, store.Save(ctx, "other", "third"))

	token, err = store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.Clear(ctx, "app"))

	token, err = store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = store.Load(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "third", token)
}

func TestRegisterAndVerifyIdentity(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	user, err := store.Register(ctx, &bunstore.UserRecord{
		Username:       "ada",
		Email:          " Ada@Example.com ",
		Role:           "admin",
		EmailValidated: true,
	}, "analytical-engine")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)

	identity, err := store.VerifyIdentity(ctx, "ADA@example.com", "analytical-engine")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), identity.ID())
	assert.Equal(t, "ada", identity.Username())
	assert.Equal(t, "admin", identity.Role())

	identity, err = store.VerifyIdentity(ctx, "ada", "analytical-engine")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", identity.Email())

	_, err = store.VerifyIdentity(ctx, "ada", "difference-engine")
	assert.ErrorIs(t, err, provider.ErrMismatchedHashAndPassword)

	_, err = store.VerifyIdentity(ctx, "nobody", "x")
	assert.ErrorIs(t, err, provider.ErrIdentityNotFound)
}

func TestRegisterRejectsDuplicatesAndEmptyPasswords(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Register(ctx, &bunstore.UserRecord{Username: "a", Email: "a@example.com", Role: "member"}, "pw-123456")
	require.NoError(t, err)

	_, err = store.Register(ctx, &bunstore.UserRecord{Username: "a", Email: "a@example.com", Role: "member"}, "pw-123456")
	assert.Error(t, err)

	_, err = store.Register(ctx, &bunstore.UserRecord{Username: "b", Email: "b@example.com", Role: "member"}, "")
	assert.Error(t, err)

	_, err = store.Register(ctx, nil, "pw")
	assert.Error(t, err)
}

func TestStoreBacksAuthSessions(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Register(ctx, &bunstore.UserRecord{
		Username: "grace",
		Email:    "grace@example.com",
		Role:     "member",
	}, "cobol-rules")
	require.NoError(t, err)

	opts := provider.Options{
		APIKey:      "bunstore-signing-key-0123456789",
		ProjectID:   "bunstore",
		Persistence: store,
		Identities:  store,
	}

	first := provider.NewRegistry()
	app, err := first.InitializeApp(opts)
	require.NoError(t, err)
	auth, err := provider.GetAuth(app)
	require.NoError(t, err)

	signedIn, err := auth.SignInWithPassword(ctx, "grace@example.com", "cobol-rules")
	require.NoError(t, err)

	second := provider.NewRegistry()
	app2, err := second.InitializeApp(opts)
	require.NoError(t, err)
	auth2, err := provider.GetAuth(app2)
	require.NoError(t, err)

	restored, err := auth2.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, signedIn.UID, restored.UID)
	assert.Equal(t, "grace@example.com", restored.Email)

	require.NoError(t, auth2.SignOut(ctx))

	token, err := store.Load(ctx, provider.DefaultAppName)
	require.NoError(t, err)
	assert.Empty(t, token)
}

package provider

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrMismatchedHashAndPassword is returned when a password does not match
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// ErrNoEmptyString empty passwords are not hashed
var ErrNoEmptyString = errors.New("empty string not allowed")

// ErrNilListener is returned when registering a nil state listener
var ErrNilListener = errors.New("auth state listener must not be nil")

// ErrNoIdentityProvider password sign in needs an IdentityProvider
var ErrNoIdentityProvider = goerrors.New("no identity provider configured", goerrors.CategoryInternal).
	WithTextCode("NO_IDENTITY_PROVIDER")

// ErrAppNotFound is returned by Registry.GetApp for unknown names
var ErrAppNotFound = goerrors.New("no app with that name has been initialized", goerrors.CategoryNotFound).
	WithTextCode("APP_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrDuplicateApp is returned when initializing the same app name twice
var ErrDuplicateApp = goerrors.New("an app with that name already exists", goerrors.CategoryConflict).
	WithTextCode("DUPLICATE_APP").
	WithCode(goerrors.CodeConflict)

// ErrAppDeleted is returned when using an app after DeleteApp
var ErrAppDeleted = goerrors.New("app has been deleted", goerrors.CategoryBadInput).
	WithTextCode("APP_DELETED").
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidOptions is returned when app options fail validation
var ErrInvalidOptions = goerrors.New("invalid app options", goerrors.CategoryValidation).
	WithTextCode("INVALID_OPTIONS").
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired is returned for tokens past their expiration
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that can not be parsed
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToDecodeSession unable to decode JWT claims
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) || hasTextCode(err, ErrTokenExpired.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) || hasTextCode(err, ErrTokenMalformed.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}

func hasTextCode(err error, code string) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.TextCode == code
}

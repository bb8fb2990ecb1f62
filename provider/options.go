package provider

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenTTL is used when Options.TokenTTL is zero.
const DefaultTokenTTL = time.Hour

// Options configure an App. The env tags are read by LoadOptions.
type Options struct {
	// APIKey signs and verifies session tokens (HS256).
	APIKey string `env:"AUTHSTATE_API_KEY"`
	// ProjectID is used as the token issuer.
	ProjectID string `env:"AUTHSTATE_PROJECT_ID"`
	// Audience restricts accepted tokens, optional.
	Audience []string `env:"AUTHSTATE_AUDIENCE" envSeparator:","`
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `env:"AUTHSTATE_TOKEN_TTL" envDefault:"1h"`

	Persistence TokenStore
	Identities  IdentityProvider
	Activity    ActivitySink
	Logger      Logger
}

// LoadOptions reads Options from the environment.
func LoadOptions() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "parse env")
	}
	return opts, nil
}

// Validate checks the options needed to build an Auth.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.APIKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&o.ProjectID, validation.Required, validation.Length(1, 200)),
		validation.Field(&o.TokenTTL, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return goerrors.Wrap(err, ErrInvalidOptions.Category, ErrInvalidOptions.Message).
			WithTextCode(ErrInvalidOptions.TextCode)
	}
	return nil
}

func (o Options) tokenTTL() time.Duration {
	if o.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return o.TokenTTL
}

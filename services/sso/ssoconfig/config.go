package ssoconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// UIDField selects which identity attribute becomes the normalized user id.
type UIDField string

const (
	UIDFieldOwnerHash     UIDField = "owner_hash"
	UIDFieldCharacterID   UIDField = "character_id"
	UIDFieldCharacterName UIDField = "character_name"
)

func (f *UIDField) UnmarshalText(text []byte) error {
	switch UIDField(text) {
	case UIDFieldOwnerHash, UIDFieldCharacterID, UIDFieldCharacterName:
		*f = UIDField(text)
		return nil
	}
	return fmt.Errorf("unknown uid-field %q (want %s, %s or %s)", text, UIDFieldOwnerHash, UIDFieldCharacterID, UIDFieldCharacterName)
}

// IdentitySource selects how the character identity is derived from the
// access token after the code-for-token exchange.
type IdentitySource string

const (
	// IdentitySourceVerify asks the SSO's verify endpoint (default).
	IdentitySourceVerify IdentitySource = "verify"
	// IdentitySourceToken decodes the access token locally without
	// signature verification.
	IdentitySourceToken IdentitySource = "token"
)

func (s *IdentitySource) UnmarshalText(text []byte) error {
	switch IdentitySource(text) {
	case IdentitySourceVerify, IdentitySourceToken:
		*s = IdentitySource(text)
		return nil
	}
	return fmt.Errorf("unknown identity-source %q (want %s or %s)", text, IdentitySourceVerify, IdentitySourceToken)
}

// Config holds the application credentials and behavior toggles for the EVE
// SSO integration. It is resolved from the environment exactly once, at boot:
// missing credentials abort startup instead of failing a request later.
type Config struct {
	ClientID        string         `env:"EVESSO_CLIENT_ID"`
	ClientSecret    string         `env:"EVESSO_CLIENT_SECRET"`
	AuthHostname    string         `env:"EVESSO_AUTH_HOST" envDefault:"https://login.eveonline.com"`
	TokenHostname   string         `env:"EVESSO_TOKEN_HOST" envDefault:"https://login.eveonline.com"`
	DefaultScope    string         `env:"EVESSO_DEFAULT_SCOPE"`
	UIDField        UIDField       `env:"EVESSO_UID_FIELD" envDefault:"owner_hash"`
	SendRedirectURI bool           `env:"EVESSO_SEND_REDIRECT_URI" envDefault:"true"`
	IdentitySource  IdentitySource `env:"EVESSO_IDENTITY_SOURCE" envDefault:"verify"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing environment: %s", err)
	}

	if cfg.ClientID == "" {
		return Config{}, fmt.Errorf("EVESSO_CLIENT_ID is required")
	}
	if cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("EVESSO_CLIENT_SECRET is required")
	}

	return cfg, nil
}

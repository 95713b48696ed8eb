package sso

import (
	"strconv"
	"strings"
	"time"

	"github.com/evefleet/ssobackend/services/sso/identity"
	"github.com/evefleet/ssobackend/services/sso/ssoclient"
	"github.com/evefleet/ssobackend/services/sso/ssoconfig"
)

// AuthResult is the normalized outcome of a successful login.
type AuthResult struct {
	UID         string
	Credentials Credentials
	Info        Info
	Extra       Extra
}

type Credentials struct {
	Token        string
	RefreshToken string
	TokenType    string
	Expires      bool
	ExpiresIn    int
	ExpiresAt    *time.Time
	Scopes       []string
}

type Info struct {
	CharacterID int64
	Name        string
	OwnerHash   string
}

// Extra carries the unprocessed provider responses for callers that need
// fields the normalized result does not cover.
type Extra struct {
	RawToken    ssoclient.GetTokenResponse
	RawIdentity map[string]interface{}
}

// Failure tags one reason a login did not complete.
type Failure struct {
	Kind    string
	Message string
}

const (
	failureKindMissingCode = "missing_code"
	failureKindToken       = "token"
	failureKindVerify      = "verify"
)

func buildAuthResult(uidField ssoconfig.UIDField, now time.Time, tokenResp ssoclient.GetTokenResponse, ident identity.Identity) AuthResult {
	return AuthResult{
		UID: uidOf(uidField, ident),
		Credentials: Credentials{
			Token:        tokenResp.AccessToken,
			RefreshToken: tokenResp.RefreshToken,
			TokenType:    tokenResp.TokenType,
			Expires:      tokenResp.ExpiresIn != 0,
			ExpiresIn:    tokenResp.ExpiresIn,
			ExpiresAt:    calculateExpiresAt(now, tokenResp.ExpiresIn),
			Scopes:       splitScopes(tokenResp.Scope),
		},
		Info: Info{
			CharacterID: ident.CharacterID,
			Name:        ident.CharacterName,
			OwnerHash:   ident.OwnerHash,
		},
		Extra: Extra{
			RawToken:    tokenResp,
			RawIdentity: ident.Raw,
		},
	}
}

func uidOf(uidField ssoconfig.UIDField, ident identity.Identity) string {
	switch uidField {
	case ssoconfig.UIDFieldCharacterID:
		return strconv.FormatInt(ident.CharacterID, 10)
	case ssoconfig.UIDFieldCharacterName:
		return ident.CharacterName
	default:
		return ident.OwnerHash
	}
}

// splitScopes splits the provider's space-separated scope string. An empty
// scope yields a single empty element, not an empty slice.
func splitScopes(scope string) []string {
	return strings.Split(scope, " ")
}

func calculateExpiresAt(now time.Time, expiresIn int) *time.Time {
	if expiresIn == 0 {
		return nil
	}
	t := now.Add(time.Second * time.Duration(expiresIn))
	return &t
}

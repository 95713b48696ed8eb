package identity

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type localDecoder struct {
	parser *jwt.Parser
}

// NewLocalDecoder returns a resolver that reads the character identity straight
// out of the access token. The token is decoded without signature verification:
// it was just handed to us by the SSO over TLS, so we trust its origin.
func NewLocalDecoder() Resolver {
	return &localDecoder{
		parser: jwt.NewParser(),
	}
}

func (d *localDecoder) Resolve(c context.Context, accessToken string) (Identity, error) {
	if strings.Count(accessToken, ".") != 2 {
		return Identity{}, newError(KindFormat, "access token is not a three-segment jwt")
	}

	claims := jwt.MapClaims{}
	_, _, err := d.parser.ParseUnverified(accessToken, claims)
	if err != nil {
		return Identity{}, newError(KindDecode, "error decoding access token: %s", err)
	}

	identity := Identity{
		Raw: map[string]interface{}(claims),
	}
	subject, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, newError(KindDecode, "access token carries no sub claim")
	}
	identity.Subject = subject
	characterID, err := parseSubject(subject)
	if err != nil {
		return Identity{}, newError(KindDecode, "error decoding access token: %s", err)
	}
	identity.CharacterID = characterID

	identity.CharacterName, ok = claims["name"].(string)
	if !ok {
		return Identity{}, newError(KindDecode, "access token carries no name claim")
	}
	identity.OwnerHash, ok = claims["owner"].(string)
	if !ok {
		return Identity{}, newError(KindDecode, "access token carries no owner claim")
	}

	return identity, nil
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//go:generate mockgen -source=identity.go -package identity -destination resolver_mock.go Resolver

// Identity describes the EVE character behind an access token.
type Identity struct {
	Subject       string
	CharacterID   int64
	CharacterName string
	OwnerHash     string
	Raw           map[string]interface{}
}

// Resolver turns an access token into the identity of its owner.
type Resolver interface {
	Resolve(c context.Context, accessToken string) (Identity, error)
}

type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindTransport    Kind = "transport"
	KindDecode       Kind = "decode"
	KindFormat       Kind = "format"
)

// Error carries the reason a resolver could not produce an identity.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// KindOf extracts the failure kind from err, or "" when err is not a resolver error.
func KindOf(err error) Kind {
	resolverErr := &Error{}
	if errors.As(err, &resolverErr) {
		return resolverErr.Kind
	}
	return ""
}

// parseSubject extracts the numeric character id from a subject like "CHARACTER:EVE:2112625428".
func parseSubject(subject string) (int64, error) {
	idx := strings.LastIndex(subject, ":")
	if idx < 0 {
		return 0, fmt.Errorf("subject %q has no character id", subject)
	}
	characterID, err := strconv.ParseInt(subject[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject %q has a non-numeric character id", subject)
	}
	return characterID, nil
}

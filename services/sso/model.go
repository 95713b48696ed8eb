package sso

import "time"

// LoginSession tracks one login attempt from auth-url composition to callback
// completion. Token material is deliberately never stored: once the callback
// has been answered the tokens live only with the caller.
type LoginSession struct {
	UID            string
	ClientID       string
	Scopes         string
	ReturnURL      string
	CallerState    string
	CreatedAt      time.Time
	LastModified   *time.Time
	Done           bool
	Succeeded      bool
	CharacterID    int64
	CharacterName  string
	FailureKind    string
	FailureMessage string
}

type LoginStatus struct {
	SessionUID    string
	CreatedAt     time.Time
	LastModified  *time.Time
	Done          bool
	Succeeded     bool
	CharacterName string
	FailureKind   string
}

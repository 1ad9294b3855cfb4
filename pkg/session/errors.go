package session

import "errors"

var (
	// ErrSessionNotFound indicates the request carries no session ID.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates the request carries a malformed session ID.
	ErrInvalidSession = errors.New("session.invalid")
)

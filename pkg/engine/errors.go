package engine

import "errors"

var (
	// ErrInvalidInput signals a request with a missing session id or
	// empty message text.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound signals a lookup for a session that does not
	// exist or has expired.
	ErrSessionNotFound = errors.New("session not found")
)

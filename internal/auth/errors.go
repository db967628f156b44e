package auth

import "errors"

var (
	// ErrMissingToken is returned when the request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when the token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingRole is returned when a verified token does not carry the configured role claim.
	ErrMissingRole = errors.New("token has no role claim")

	// ErrInvalidIP is returned when the client address cannot be parsed.
	ErrInvalidIP = errors.New("invalid client ip")
)

package webtoken

import "errors"

var (
	// ErrSecretTooShort is returned when the signing secret has fewer than MinSecretLength bytes.
	ErrSecretTooShort = errors.New("jwt secret must be at least 20 bytes")

	// ErrNotAuthenticated is returned when issuing a token for an unauthenticated principal.
	ErrNotAuthenticated = errors.New("user context is not authenticated")

	// ErrTokenInvalid is returned for tokens with a bad signature, issuer, audience or shape.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned for authentic tokens past their expiry.
	ErrTokenExpired = errors.New("token has expired")
)

package utils

import "errors"

var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures and
	// claims that do not match.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token is expired")
	// ErrInvalidAuthorizationHeader is returned when the Authorization header
	// is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

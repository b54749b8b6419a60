package adapter

import "errors"

// Errors returned by the adapter are wrapped with the server message, so
// errors.Is works on the status class while Error() stays readable.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrInternalServer   = errors.New("internal server error")
	ErrUnavailable      = errors.New("service unavailable")
	ErrNotAuthenticated = errors.New("no session token, log in first")
	ErrEmptyAddress     = errors.New("empty server address")
)

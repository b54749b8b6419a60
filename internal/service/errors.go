package service

import "errors"

var (
	// ErrValidation wraps every validator error.
	ErrValidation = errors.New("validation failed")

	ErrDuplicateEmail        = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailNotVerified      = errors.New("email is not verified")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrAlreadyVerified       = errors.New("email is already verified")

	ErrForbidden     = errors.New("forbidden")
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidMedia  = errors.New("invalid media")
	ErrMediaTooLarge = errors.New("media is too large")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

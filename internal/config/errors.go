package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrUnknownEnvironment indicates an APP_ENV other than development or production.
	ErrUnknownEnvironment = errors.New("unknown environment")
	// ErrMissingJWTSecret indicates that JWT_SECRET is not provisioned.
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	// ErrWeakJWTSecret indicates a production JWT_SECRET shorter than 32 characters.
	ErrWeakJWTSecret = errors.New("JWT_SECRET must be at least 32 characters in production")
	// ErrMissingDatabaseURL indicates that DATABASE_URL is not provisioned.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	// ErrInvalidBcryptCost indicates a bcrypt cost outside 10..31.
	ErrInvalidBcryptCost = errors.New("BCRYPT_COST must be between 10 and 31")
	// ErrInvalidTokenTTL indicates a non-positive token lifetime.
	ErrInvalidTokenTTL = errors.New("token lifetimes must be positive")
	// ErrInvalidFrontendURL indicates that FRONTEND_URL is not an absolute URL.
	ErrInvalidFrontendURL = errors.New("invalid FRONTEND_URL")
	// ErrInvalidMailConfigs indicates non-positive mail worker, queue or retry settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrMissingSMTPConfigs indicates missing SMTP_HOST, SMTP_USER or SMTP_PASS in production.
	ErrMissingSMTPConfigs = errors.New("SMTP_HOST, SMTP_USER and SMTP_PASS are required in production")
)

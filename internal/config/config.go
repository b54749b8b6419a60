// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-vidshare server. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds deployment-level settings: environment name, version,
	// frontend base URL and log level.
	App App

	// Auth holds session token, one-time token and password hashing settings.
	Auth Auth

	// Storage holds configuration for all persistence backends: the
	// relational database, uploaded media and the attempt-limiter store.
	Storage Storage

	// Mail holds the SMTP transport and the async delivery settings.
	Mail Mail

	// Server holds network address, timeout and CORS settings for the HTTP
	// and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// RateLimit bounds repeated attempts on the public auth endpoints.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds deployment-level configuration values.
type App struct {
	// Environment is either "development" or "production". Production
	// enables the strict validation rules.
	// Env: APP_ENV
	Environment string `env:"APP_ENV"`

	// Version is the semantic version string of the running application.
	// Exposed via /api/version and /api/health.
	// Env: APP_VERSION
	Version string `env:"APP_VERSION"`

	// FrontendURL is the base URL of the single-page frontend. It is used to
	// build links in emails and is always part of the CORS allow-list.
	// Env: FRONTEND_URL
	FrontendURL string `env:"FRONTEND_URL"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds token and password hashing settings.
type Auth struct {
	// JWTSecret signs session tokens. Required.
	// Env: JWT_SECRET
	JWTSecret string `env:"JWT_SECRET"`

	// TokenIssuer is the "iss" claim of every session token and is checked
	// on every authenticated request.
	// Env: JWT_ISSUER
	TokenIssuer string `env:"JWT_ISSUER"`

	// SessionTTL is the lifetime of a session token ("7d", "12h").
	// Env: JWT_EXPIRES_IN
	SessionTTL time.Duration `env:"JWT_EXPIRES_IN"`

	// VerificationTTL is the lifetime of an email-verification token.
	// Env: VERIFICATION_TOKEN_EXPIRES_IN
	VerificationTTL time.Duration `env:"VERIFICATION_TOKEN_EXPIRES_IN"`

	// ResetTTL is the lifetime of a password-reset token.
	// Env: RESET_TOKEN_EXPIRES_IN
	ResetTTL time.Duration `env:"RESET_TOKEN_EXPIRES_IN"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// TokenHashKey keys the HMAC digest under which one-time tokens are
	// stored. Defaults to JWTSecret.
	// Env: TOKEN_HASH_KEY
	TokenHashKey string `env:"TOKEN_HASH_KEY"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB

	// Files holds the uploaded media settings.
	Files Files

	// Redis holds the optional Redis connection used by the attempt limiter.
	Redis Redis
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: postgres:// and postgresql:// use
	// pgx, sqlite:// and file: use sqlite3.
	// Env: DATABASE_URL
	DSN string `env:"DATABASE_URL"`

	// MaxOpenConns limits the connection pool.
	// Env: DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS"`
}

// Files holds settings of the uploaded media store.
type Files struct {
	// UploadDir is the directory where videos and thumbnails are written.
	// Env: UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// PublicPath is the URL prefix under which UploadDir is served.
	// Env: UPLOAD_PUBLIC_PATH
	PublicPath string `env:"UPLOAD_PUBLIC_PATH"`

	// MaxUploadSize caps the size of a single multipart request in bytes.
	// Env: MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Redis holds the Redis connection URL. Empty selects the in-memory limiter.
type Redis struct {
	// Env: REDIS_URL
	URL string `env:"REDIS_URL"`
}

// Mail holds outbound email settings.
type Mail struct {
	// SMTP holds the transport settings. When Host is empty outside
	// production, messages are written to the log instead of being sent.
	SMTP SMTP `envPrefix:"SMTP_"`

	// Workers is the number of goroutines delivering queued mail.
	// Env: MAIL_WORKERS
	Workers int `env:"MAIL_WORKERS"`

	// QueueSize bounds the number of pending messages.
	// Env: MAIL_QUEUE_SIZE
	QueueSize int `env:"MAIL_QUEUE_SIZE"`

	// RetryAttempts is the total number of delivery attempts per message.
	// Env: MAIL_RETRY_ATTEMPTS
	RetryAttempts int `env:"MAIL_RETRY_ATTEMPTS"`

	// RetryDelay is the initial backoff between attempts; it doubles after
	// each failure.
	// Env: MAIL_RETRY_DELAY
	RetryDelay time.Duration `env:"MAIL_RETRY_DELAY"`
}

// SMTP holds the SMTP transport settings.
type SMTP struct {
	// Env: SMTP_HOST
	Host string `env:"HOST"`
	// Env: SMTP_PORT
	Port int `env:"PORT"`
	// Env: SMTP_USER
	User string `env:"USER"`
	// Env: SMTP_PASS
	Password string `env:"PASS"`
	// From is the envelope and header sender. Defaults to User.
	// Env: SMTP_FROM
	From string `env:"FROM"`
	// Secure selects implicit TLS (port 465) instead of STARTTLS.
	// Env: SMTP_SECURE
	Secure bool `env:"SECURE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server. Empty
	// disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before its context is cancelled.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown, including draining the mail
	// queue.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// AllowedOrigins is the CORS allow-list. FrontendURL is appended to it.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma-separated)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	// when resolving the client IP.
	// Env: SERVER_TRUSTED_PROXIES (comma-separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// RateLimit bounds repeated attempts on public auth endpoints per client IP.
type RateLimit struct {
	// Env: RATE_LIMIT_ATTEMPTS
	Attempts int `env:"ATTEMPTS"`
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`
}

// IsProduction reports whether the production rules apply.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Environment == EnvProduction
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. For every field the first
// non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

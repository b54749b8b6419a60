// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

// minSecretLength is the shortest JWT secret accepted in production.
const minSecretLength = 32

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Missing required settings are
// fatal; production adds stricter rules.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Environment != EnvDevelopment && cfg.App.Environment != EnvProduction {
		return fmt.Errorf("%w: %q", ErrUnknownEnvironment, cfg.App.Environment)
	}

	if cfg.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDatabaseURL
	}

	if cfg.Auth.BcryptCost < 10 || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrInvalidBcryptCost, cfg.Auth.BcryptCost)
	}

	if cfg.Auth.SessionTTL <= 0 || cfg.Auth.VerificationTTL <= 0 || cfg.Auth.ResetTTL <= 0 {
		return ErrInvalidTokenTTL
	}

	if _, err := url.ParseRequestURI(cfg.App.FrontendURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrontendURL, err)
	}

	if cfg.Mail.Workers < 1 || cfg.Mail.QueueSize < 1 || cfg.Mail.RetryAttempts < 1 {
		return ErrInvalidMailConfigs
	}

	if !cfg.IsProduction() {
		return nil
	}

	if len(cfg.Auth.JWTSecret) < minSecretLength {
		return ErrWeakJWTSecret
	}

	if cfg.Mail.SMTP.Host == "" || cfg.Mail.SMTP.User == "" || cfg.Mail.SMTP.Password == "" {
		return ErrMissingSMTPConfigs
	}

	return nil
}

// Warnings lists non-fatal configuration problems worth logging at startup.
func (cfg *StructuredConfig) Warnings() []string {
	var warnings []string

	if len(cfg.Auth.JWTSecret) < minSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d characters", minSecretLength))
	}

	if cfg.Mail.SMTP.Host == "" {
		warnings = append(warnings, "SMTP is not configured, emails will be written to the log")
	}

	if cfg.Storage.Redis.URL == "" {
		warnings = append(warnings, "REDIS_URL is not set, attempt limits are kept in memory")
	}

	return warnings
}

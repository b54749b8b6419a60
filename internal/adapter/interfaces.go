// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the VidShare REST API.
//
// [ServerAdapter] hides the transport from its callers: cmd/client and the
// end-to-end tests. Non-2xx answers are mapped to the sentinels of
// errors.go, so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401,
// [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vidshare/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// Login calls it on success.
	SetToken(token string)
	Token() string

	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)

	// Login stores the returned session token.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Logout tells the server and forgets the local token.
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.User, error)

	VerifyEmail(ctx context.Context, token string) (models.User, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error)

	ListPosts(ctx context.Context, page models.Page) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error)
	AddComment(ctx context.Context, postID int64, content string) (models.Comment, error)
	ToggleLike(ctx context.Context, postID int64) (models.LikeState, error)

	Health(ctx context.Context) (models.HealthResponse, error)
	Version(ctx context.Context) (models.VersionResponse, error)
}

package service

//go:generate mockgen -source=interfaces.go -destination=mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vidshare/models"
)

// TokenService issues and checks session tokens and one-time tokens.
type TokenService interface {
	IssueSessionToken(userID int64) (models.Token, error)
	// VerifySessionToken returns the user id carried by a valid token, or
	// utils.ErrTokenInvalid / utils.ErrTokenExpired.
	VerifySessionToken(token string) (int64, error)

	IssueOneTimeToken(kind models.OneTimeTokenKind) (models.OneTimeToken, error)
	VerifyOneTimeToken(kind models.OneTimeTokenKind, presented, storedDigest string, storedExpiry *time.Time) error
	DigestOneTimeToken(presented string) string
}

// AuthService implements the account flows. Returned users are sanitized.
type AuthService interface {
	Signup(ctx context.Context, request models.SignupRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest, client models.ClientInfo) (models.User, models.Token, error)
	Logout(ctx context.Context, userID int64, client models.ClientInfo) error
	CurrentUser(ctx context.Context, userID int64) (models.User, error)

	ForgotPassword(ctx context.Context, request models.EmailRequest) error
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error
	VerifyEmail(ctx context.Context, request models.VerifyEmailRequest) (models.User, error)
	ResendVerification(ctx context.Context, request models.EmailRequest) error
}

// PostService implements posts, comments and likes.
type PostService interface {
	ListPosts(ctx context.Context, page models.Page) ([]models.Post, error)
	ListUserPosts(ctx context.Context, userID int64, page models.Page) ([]models.Post, error)
	// GetPost counts a view and returns the post with the new count.
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	CreatePost(ctx context.Context, request models.CreatePostRequest) (models.Post, error)
	UpdatePost(ctx context.Context, request models.UpdatePostRequest) (models.Post, error)
	DeletePost(ctx context.Context, postID, userID int64) error

	ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error)
	AddComment(ctx context.Context, request models.CreateCommentRequest) (models.Comment, error)
	ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error)
}

// AppInfoService reports build information and readiness.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
	// CheckHealth returns nil when the database answers.
	CheckHealth(ctx context.Context) error
}

// AuthServiceWrapper decorates an AuthService, e.g. with validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// PostServiceWrapper decorates a PostService.
type PostServiceWrapper interface {
	Wrap(PostService) PostService
}

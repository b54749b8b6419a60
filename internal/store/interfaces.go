package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vidshare/models"
)

// UserRepository persists accounts and their one-time token digests.
type UserRepository interface {
	// Create inserts a user together with its verification digest and
	// expiry. A taken email yields [ErrEmailAlreadyExists].
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByVerificationToken(ctx context.Context, digest string) (models.User, error)
	FindByResetToken(ctx context.Context, digest string) (models.User, error)
	SetVerificationToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error
	// MarkVerified verifies the user only while digest is still stored and
	// unexpired at now, clearing it in the same statement. Otherwise
	// [ErrTokenNotMatched] is returned.
	MarkVerified(ctx context.Context, id int64, digest string, now time.Time) error
	SetResetToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error
	// UpdatePassword replaces the hash under the same guard as MarkVerified,
	// consuming the reset digest.
	UpdatePassword(ctx context.Context, id int64, passwordHash, digest string, now time.Time) error
}

// LoginLogRepository appends login and logout events.
type LoginLogRepository interface {
	Append(ctx context.Context, entry models.LoginLog) error
}

// PostRepository stores posts. Reads return the aggregated counters and the
// author name.
type PostRepository interface {
	Create(ctx context.Context, post models.Post) (models.Post, error)
	FindByID(ctx context.Context, id int64) (models.Post, error)
	List(ctx context.Context, page models.Page) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Post, error)
	// Update writes title and description of a post owned by post.UserID.
	Update(ctx context.Context, post models.Post) (models.Post, error)
	Delete(ctx context.Context, id, userID int64) error
	IncrementViews(ctx context.Context, id int64) error
}

// CommentRepository stores comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) (models.Comment, error)
	ListByPost(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error)
}

// LikeRepository toggles likes.
type LikeRepository interface {
	Toggle(ctx context.Context, postID, userID int64) (models.LikeState, error)
}

// MediaStorage keeps uploaded videos and thumbnails.
type MediaStorage interface {
	// Save stores the upload and returns its public URL.
	Save(ctx context.Context, userID int64, upload models.MediaUpload) (string, error)
	// Delete removes the object behind a URL returned by Save. Missing
	// objects are not an error.
	Delete(ctx context.Context, url string) error
}

// AttemptLimiter counts attempts per key inside a fixed window.
type AttemptLimiter interface {
	// Allow records an attempt and reports whether it is within the limit.
	// When it is not, retryAfter tells when the window resets.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Close() error
}

// ErrorClassificator inspects driver errors for one SQL dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

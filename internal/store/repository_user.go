package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

const (
	verificationTokenColumn = "verification_token"
	resetTokenColumn        = "reset_token"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. Every mutation is a single statement.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the user and returns it with the database identity set.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - connection-class failures → [ErrStoreUnavailable].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error building query")
		return models.User{}, err
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")
		if errors.Is(err, ErrUniqueViolation) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", sq.Eq{"id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", sq.Eq{"email": email})
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, digest string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByVerificationToken", sq.Eq{verificationTokenColumn: digest})
}

func (r *userRepository) FindByResetToken(ctx context.Context, digest string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByResetToken", sq.Eq{resetTokenColumn: digest})
}

func (r *userRepository) SetVerificationToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error {
	return r.setToken(ctx, "*userRepository.SetVerificationToken", id, verificationTokenColumn, digest, expiresAt)
}

func (r *userRepository) SetResetToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error {
	return r.setToken(ctx, "*userRepository.SetResetToken", id, resetTokenColumn, digest, expiresAt)
}

func (r *userRepository) MarkVerified(ctx context.Context, id int64, digest string, now time.Time) error {
	return r.consumeToken(ctx, "*userRepository.MarkVerified", id, verificationTokenColumn, digest, now,
		map[string]any{"is_verified": true})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash, digest string, now time.Time) error {
	return r.consumeToken(ctx, "*userRepository.UpdatePassword", id, resetTokenColumn, digest, now,
		map[string]any{"password_hash": passwordHash})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) setToken(ctx context.Context, funcName string, id int64, column, digest string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetUserTokenQuery(r.db.builder, id, column, digest, expiresAt.UTC(), time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return err
	}

	return r.execOne(ctx, funcName, query, args, ErrUserNotFound)
}

func (r *userRepository) consumeToken(ctx context.Context, funcName string, id int64, column, digest string, now time.Time, set map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeUserTokenQuery(r.db.builder, id, column, digest, now.UTC(), set)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return err
	}

	return r.execOne(ctx, funcName, query, args, ErrTokenNotMatched)
}

// execOne runs a statement expected to touch one row and returns notMatched
// when it touched none.
func (r *userRepository) execOne(ctx context.Context, funcName, query string, args []any, notMatched error) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notMatched
	}

	return nil
}

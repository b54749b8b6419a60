package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

type likeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLikeRepository constructs a [LikeRepository].
func NewLikeRepository(db *DB, logger *logger.Logger) LikeRepository {
	logger.Debug().Msg("creating like repository")
	return &likeRepository{db: db, logger: logger}
}

// Toggle adds the like when absent and removes it when present, then
// returns the new state and count. All of it runs in one transaction.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID int64) (models.LikeState, error) {
	log := logger.FromContext(ctx)
	state := models.LikeState{PostID: postID}

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := r.ensurePost(ctx, tx, postID); err != nil {
			return err
		}

		query, args, err := buildSelectLikeQuery(r.db.builder, postID, userID)
		if err != nil {
			return err
		}

		var one int
		err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			query, args, err = buildInsertLikeQuery(r.db.builder, postID, userID, time.Now().UTC())
			state.Liked = true
		case err == nil:
			query, args, err = buildDeleteLikeQuery(r.db.builder, postID, userID)
			state.Liked = false
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.translate(err))
		}
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			err = r.db.translate(err)
			// a concurrent toggle inserted the same pair first
			if !errors.Is(err, ErrUniqueViolation) {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		query, args, err = buildCountLikesQuery(r.db.builder, postID)
		if err != nil {
			return err
		}
		if err = tx.QueryRowContext(ctx, query, args...).Scan(&state.Likes); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, r.db.translate(err))
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			log.Err(err).Str("func", "*likeRepository.Toggle").Msg("error toggling like")
		}
		return models.LikeState{}, err
	}

	return state, nil
}

func (r *likeRepository) ensurePost(ctx context.Context, tx DBTX, postID int64) error {
	query, args, err := buildPostExistsQuery(r.db.builder, postID)
	if err != nil {
		return err
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.translate(err))
	}
	return nil
}

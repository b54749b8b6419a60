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

type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository].
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{db: db, logger: logger}
}

// Create inserts the post and reads it back with author and counters.
func (r *postRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}

	query, args, err := buildInsertPostQuery(r.db.builder, post)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Create").Msg("error building query")
		return models.Post{}, err
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*postRepository.Create").Msg("error inserting post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.FindByID(ctx, id)
}

func (r *postRepository) FindByID(ctx context.Context, id int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPostQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.FindByID").Msg("error building query")
		return models.Post{}, err
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*postRepository.FindByID").Msg("error selecting post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, page models.Page) ([]models.Post, error) {
	return r.list(ctx, "*postRepository.List", 0, page)
}

func (r *postRepository) ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Post, error) {
	return r.list(ctx, "*postRepository.ListByUser", userID, page)
}

func (r *postRepository) list(ctx context.Context, funcName string, userID int64, page models.Page) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(r.db.builder, userID, page)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", funcName).Msg("error selecting posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning post")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating posts")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.translate(err))
	}

	return posts, nil
}

// Update only matches a post owned by post.UserID. A miss yields
// [ErrPostNotFound].
func (r *postRepository) Update(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = time.Now().UTC()
	}

	query, args, err := buildUpdatePostQuery(r.db.builder, post)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Update").Msg("error building query")
		return models.Post{}, err
	}

	if err = r.execOne(ctx, "*postRepository.Update", query, args); err != nil {
		return models.Post{}, err
	}

	return r.FindByID(ctx, post.ID)
}

// Delete only matches a post owned by userID. Comments and likes go with it.
func (r *postRepository) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeletePostQuery(r.db.builder, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Delete").Msg("error building query")
		return err
	}

	return r.execOne(ctx, "*postRepository.Delete", query, args)
}

func (r *postRepository) IncrementViews(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildIncrementViewsQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.IncrementViews").Msg("error building query")
		return err
	}

	return r.execOne(ctx, "*postRepository.IncrementViews", query, args)
}

func (r *postRepository) execOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	return nil
}

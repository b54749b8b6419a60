package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCommentRepository constructs a [CommentRepository].
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{db: db, logger: logger}
}

// Create inserts a comment. A missing post surfaces as [ErrPostNotFound]
// through the foreign key.
func (r *commentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertCommentQuery(r.db.builder, comment)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error building query")
		return models.Comment{}, err
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error inserting comment")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.Comment{}, ErrPostNotFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = buildSelectCommentQuery(r.db.builder, comment.ID)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error building query")
		return models.Comment{}, err
	}

	created, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error reading comment back")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCommentsQuery(r.db.builder, postID, page)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error selecting comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error scanning comment")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.translate(err))
	}

	return comments, nil
}

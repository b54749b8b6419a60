package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

type loginLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLoginLogRepository constructs a [LoginLogRepository].
func NewLoginLogRepository(db *DB, logger *logger.Logger) LoginLogRepository {
	logger.Debug().Msg("creating login log repository")
	return &loginLogRepository{db: db, logger: logger}
}

// Append inserts one entry. CreatedAt defaults to the current time.
func (r *loginLogRepository) Append(ctx context.Context, entry models.LoginLog) error {
	log := logger.FromContext(ctx)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertLoginLogQuery(r.db.builder, entry)
	if err != nil {
		log.Err(err).Str("func", "*loginLogRepository.Append").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*loginLogRepository.Append").Msg("error inserting login log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

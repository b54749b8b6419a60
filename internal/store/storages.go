// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
)

// Storages groups every repository and storage backend the service layer
// depends on. It owns the underlying connections; call Close once on
// shutdown.
type Storages struct {
	DB *DB

	UserRepository     UserRepository
	LoginLogRepository LoginLogRepository
	PostRepository     PostRepository
	CommentRepository  CommentRepository
	LikeRepository     LikeRepository

	MediaStorage   MediaStorage
	AttemptLimiter AttemptLimiter
}

// NewStorages initialises the storage layer:
//  1. Opens the database selected by cfg.Storage.DB.DSN and pings it.
//  2. Runs pending migrations of the matching dialect.
//  3. Prepares the upload directory.
//  4. Connects the Redis attempt limiter, or falls back to the in-memory
//     one when no Redis URL is configured.
//
// On failure everything opened so far is closed.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	media, err := NewMediaFileStorage(cfg.Storage.Files, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var limiter AttemptLimiter
	if cfg.Storage.Redis.URL != "" {
		limiter, err = NewRedisLimiter(ctx, cfg.Storage.Redis.URL, cfg.RateLimit, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		log.Info().Msg("no redis url configured, using in-memory attempt limiter")
		limiter = NewMemoryLimiter(cfg.RateLimit)
	}

	storages := NewStoragesFromDB(db, log)
	storages.MediaStorage = media
	storages.AttemptLimiter = limiter

	log.Info().Msg("storages created")
	return storages, nil
}

// NewStoragesFromDB wires the SQL repositories over an open connection.
// MediaStorage and AttemptLimiter are left for the caller.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                 db,
		UserRepository:     NewUserRepository(db, log),
		LoginLogRepository: NewLoginLogRepository(db, log),
		PostRepository:     NewPostRepository(db, log),
		CommentRepository:  NewCommentRepository(db, log),
		LikeRepository:     NewLikeRepository(db, log),
	}
}

// Close releases the limiter and the database.
func (s *Storages) Close() error {
	var errs []error
	if s.AttemptLimiter != nil {
		errs = append(errs, s.AttemptLimiter.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}

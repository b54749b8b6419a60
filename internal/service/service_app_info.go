package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

// Pinger reports whether a backend answers. Implemented by *store.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	buildInfo  models.AppBuildInfo
	db         Pinger

	logger *logger.Logger
}

// NewAppInfoService returns an AppInfoService. The configured version wins
// over the linker-provided build version.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if version == "" {
		version = buildInfo.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: version,
		buildInfo:  buildInfo,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

func (s *appInfoService) CheckHealth(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*appInfoService.CheckHealth").Msg("database is not reachable")
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

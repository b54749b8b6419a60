package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

type stubPinger struct {
	err   error
	calls int
}

func (p *stubPinger) Ping(ctx context.Context) error {
	p.calls++
	return p.err
}

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, nil, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, nil, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestNewAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	buildInfo := models.NewAppBuildInfo("v0.4.0", "2026-05-01", "abc123")

	svc, err := NewAppInfoService(config.App{}, buildInfo, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v0.4.0", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "abc123", svc.GetBuildInfo(context.Background()).BuildCommit())
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ConfiguredVersionWins(t *testing.T) {
	buildInfo := models.NewAppBuildInfo("v0.4.0", "", "")
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, buildInfo, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_VersionWithSpecialChars(t *testing.T) {
	version := "v1.2.3-beta+build.42"
	svc, err := NewAppInfoService(config.App{Version: version}, models.AppBuildInfo{}, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, nil, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

// ─────────────────────────────────────────────
// CheckHealth
// ─────────────────────────────────────────────

func TestCheckHealth(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, nil, logger.Nop())
		require.NoError(t, err)

		assert.NoError(t, svc.CheckHealth(context.Background()))
	})

	t.Run("database up", func(t *testing.T) {
		db := &stubPinger{}
		svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, db, logger.Nop())
		require.NoError(t, err)

		assert.NoError(t, svc.CheckHealth(context.Background()))
		assert.Equal(t, 1, db.calls)
	})

	t.Run("database down", func(t *testing.T) {
		pingErr := errors.New("connection refused")
		svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, &stubPinger{err: pingErr}, logger.Nop())
		require.NoError(t, err)

		assert.ErrorIs(t, svc.CheckHealth(context.Background()), pingErr)
	})
}

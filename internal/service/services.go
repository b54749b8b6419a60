package service

import (
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/mail"
	"github.com/MKhiriev/go-vidshare/internal/store"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	PostService    PostService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. The auth and post services
// come wrapped in their validation decorators. A nil clock means time.Now.
func NewServices(
	storages *store.Storages,
	mailer mail.Mailer,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	clock Clock,
	logger *logger.Logger,
) (*Services, error) {
	passwords, err := utils.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("creating password hasher: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, storages.DB, logger)
	if err != nil {
		return nil, err
	}

	tokens := NewTokenService(cfg.Auth, clock)

	auth := NewAuthValidationService().Wrap(
		NewAuthService(storages.UserRepository, storages.LoginLogRepository, tokens, passwords, mailer, clock, logger),
	)
	posts := NewPostValidationService().Wrap(
		NewPostService(storages.PostRepository, storages.CommentRepository, storages.LikeRepository, storages.MediaStorage, logger),
	)

	return &Services{
		TokenService:   tokens,
		AuthService:    auth,
		PostService:    posts,
		AppInfoService: appInfo,
	}, nil
}

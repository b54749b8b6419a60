package http

import (
	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/store"
)

// Handler serves the REST API. A nil limiter disables attempt limiting.
type Handler struct {
	services *service.Services
	limiter  store.AttemptLimiter
	cfg      *config.StructuredConfig

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter store.AttemptLimiter, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger,
	}
}

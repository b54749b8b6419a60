package handler

import (
	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/handler/grpc"
	"github.com/MKhiriev/go-vidshare/internal/handler/http"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a transport handler for every configured address.
// limiter may be nil, which disables attempt limiting.
func NewHandlers(services *service.Services, limiter store.AttemptLimiter, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, limiter, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransports
	}

	return handlers, nil
}

// Package grpc exposes the gRPC side of the server. It serves the standard
// grpc.health.v1 protocol backed by the same database ping as the HTTP
// health endpoint.
package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/utils"
)

// ServiceName is the name reported for the API in health checks. An empty
// service name in a request refers to the whole server and is answered the
// same way.
const ServiceName = "vidshare.API"

const traceIDKey = "x-trace-id"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger. A handler
// instance is created once at startup and shared by the gRPC server.
type Handler struct {
	healthpb.UnimplementedHealthServer

	services *service.Services
	logger   *logger.Logger
	traceIDs *utils.UUIDGenerator
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
		traceIDs: utils.NewUUIDGenerator(),
	}
}

// Register attaches every service of the handler to srv.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h)
}

// ServerOptions returns the interceptors the server must be built with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.recoverInterceptor, h.loggingInterceptor),
	}
}

// Check reports SERVING while the database answers and NOT_SERVING
// otherwise. Unknown service names get codes.NotFound.
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := h.services.AppInfoService.CheckHealth(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("health check failed")
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// loggingInterceptor attaches a request logger carrying trace_id and method
// and writes one access log line per call.
func (h *Handler) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 && len(values[0]) <= 128 {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = h.traceIDs.Generate()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID).Str("grpc_method", info.FullMethod)
	})
	ctx = l.WithContext(ctx)

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	event := l.Info()
	if code == codes.Internal || code == codes.Unknown {
		event = l.Error().Err(err)
	}
	event.Str("code", code.String()).Dur("duration", time.Since(start)).Send()

	return resp, err
}

func (h *Handler) recoverInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Interface("panic", rec).Str("grpc_method", info.FullMethod).Msg("recovered from panic")
			err = status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}

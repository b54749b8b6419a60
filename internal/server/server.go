package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/handler"
	"github.com/MKhiriev/go-vidshare/internal/logger"
)

const defaultShutdownTimeout = 15 * time.Second

type transport interface {
	Listen() (net.Listener, error)
	RunServer(lis net.Listener) error
	Shutdown(ctx context.Context) error
}

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	cfg        config.Server
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{cfg: cfg, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) transports() []transport {
	var ts []transport
	if s.httpServer != nil {
		ts = append(ts, s.httpServer)
	}
	if s.gRPCServer != nil {
		ts = append(ts, s.gRPCServer)
	}
	return ts
}

// RunServer binds every transport before serving any, so a taken port fails
// startup instead of leaving half of the servers running.
func (s *server) RunServer(ctx context.Context) error {
	ts := s.transports()
	if len(ts) == 0 {
		return errNoServersToRun
	}

	listeners := make([]net.Listener, 0, len(ts))
	for _, t := range ts {
		lis, err := t.Listen()
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return err
		}
		listeners = append(listeners, lis)
	}

	serveErr := make(chan error, len(ts))
	for i, t := range ts {
		go func() {
			serveErr <- t.RunServer(listeners[i])
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
	case runErr = <-serveErr:
		s.logger.Error().Err(runErr).Msg("transport stopped unexpectedly")
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, t := range s.transports() {
		if err := t.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

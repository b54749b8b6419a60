package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/handler"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/mail"
	"github.com/MKhiriev/go-vidshare/internal/server"
	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/store"
	"github.com/MKhiriev/go-vidshare/internal/workers"
	"github.com/MKhiriev/go-vidshare/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vidshare-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	for _, warning := range cfg.Warnings() {
		log.Warn().Msg(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}
}

// run owns every long-lived resource and releases them in reverse order of
// construction once ctx ends.
func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	pool := workers.NewPool("mail", cfg.Mail.Workers, cfg.Mail.QueueSize, log)
	background := workers.NewWorkers(pool)
	background.Run(ctx)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := background.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error draining background jobs")
		}
	}()

	mailer, err := mail.NewMailer(cfg, pool, mail.NewSender(cfg.Mail, log), log)
	if err != nil {
		return fmt.Errorf("error creating mailer: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, mailer, cfg, buildInfo, time.Now, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, storages.AttemptLimiter, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer(ctx)
}

func shutdownTimeout(cfg *config.StructuredConfig) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 15 * time.Second
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

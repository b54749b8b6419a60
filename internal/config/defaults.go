package config

import "time"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment: EnvDevelopment,
			Version:     "dev",
			FrontendURL: "http://localhost:3000",
			LogLevel:    "info",
		},
		Auth: Auth{
			TokenIssuer:     "go-vidshare",
			SessionTTL:      7 * 24 * time.Hour,
			VerificationTTL: 24 * time.Hour,
			ResetTTL:        time.Hour,
			BcryptCost:      12,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 20,
			},
			Files: Files{
				UploadDir:     "./uploads",
				PublicPath:    "/uploads",
				MaxUploadSize: 200 << 20,
			},
		},
		Mail: Mail{
			SMTP: SMTP{
				Port: 587,
			},
			Workers:       2,
			QueueSize:     100,
			RetryAttempts: 3,
			RetryDelay:    2 * time.Second,
		},
		Server: Server{
			HTTPAddress:     ":8080",
			GRPCAddress:     ":9090",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		RateLimit: RateLimit{
			Attempts: 10,
			Window:   15 * time.Minute,
		},
	}
}

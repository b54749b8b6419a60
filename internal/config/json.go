package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("30s", "7d").
type StructuredJSONConfig struct {
	App struct {
		Environment string `json:"environment"`
		Version     string `json:"version"`
		FrontendURL string `json:"frontend_url"`
		LogLevel    string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		JWTSecret       string   `json:"jwt_secret"`
		TokenIssuer     string   `json:"token_issuer"`
		SessionTTL      Duration `json:"session_ttl"`
		VerificationTTL Duration `json:"verification_ttl"`
		ResetTTL        Duration `json:"reset_ttl"`
		BcryptCost      int      `json:"bcrypt_cost"`
		TokenHashKey    string   `json:"token_hash_key"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`

		Files struct {
			UploadDir     string `json:"upload_dir"`
			PublicPath    string `json:"public_path"`
			MaxUploadSize int64  `json:"max_upload_size"`
		} `json:"files,omitempty"`

		Redis struct {
			URL string `json:"url"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Mail struct {
		SMTP struct {
			Host     string `json:"host"`
			Port     int    `json:"port"`
			User     string `json:"user"`
			Password string `json:"password"`
			From     string `json:"from"`
			Secure   bool   `json:"secure"`
		} `json:"smtp,omitempty"`
		Workers       int      `json:"workers"`
		QueueSize     int      `json:"queue_size"`
		RetryAttempts int      `json:"retry_attempts"`
		RetryDelay    Duration `json:"retry_delay"`
	} `json:"mail,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		AllowedOrigins  []string `json:"allowed_origins"`
		TrustedProxies  []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	RateLimit struct {
		Attempts int      `json:"attempts"`
		Window   Duration `json:"window"`
	} `json:"rate_limit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment: jsonCfg.App.Environment,
			Version:     jsonCfg.App.Version,
			FrontendURL: jsonCfg.App.FrontendURL,
			LogLevel:    jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			JWTSecret:       jsonCfg.Auth.JWTSecret,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			SessionTTL:      time.Duration(jsonCfg.Auth.SessionTTL),
			VerificationTTL: time.Duration(jsonCfg.Auth.VerificationTTL),
			ResetTTL:        time.Duration(jsonCfg.Auth.ResetTTL),
			BcryptCost:      jsonCfg.Auth.BcryptCost,
			TokenHashKey:    jsonCfg.Auth.TokenHashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
			Files: Files{
				UploadDir:     jsonCfg.Storage.Files.UploadDir,
				PublicPath:    jsonCfg.Storage.Files.PublicPath,
				MaxUploadSize: jsonCfg.Storage.Files.MaxUploadSize,
			},
			Redis: Redis{
				URL: jsonCfg.Storage.Redis.URL,
			},
		},
		Mail: Mail{
			SMTP: SMTP{
				Host:     jsonCfg.Mail.SMTP.Host,
				Port:     jsonCfg.Mail.SMTP.Port,
				User:     jsonCfg.Mail.SMTP.User,
				Password: jsonCfg.Mail.SMTP.Password,
				From:     jsonCfg.Mail.SMTP.From,
				Secure:   jsonCfg.Mail.SMTP.Secure,
			},
			Workers:       jsonCfg.Mail.Workers,
			QueueSize:     jsonCfg.Mail.QueueSize,
			RetryAttempts: jsonCfg.Mail.RetryAttempts,
			RetryDelay:    time.Duration(jsonCfg.Mail.RetryDelay),
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			GRPCAddress:     jsonCfg.Server.GRPCAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			AllowedOrigins:  jsonCfg.Server.AllowedOrigins,
			TrustedProxies:  jsonCfg.Server.TrustedProxies,
		},
		RateLimit: RateLimit{
			Attempts: jsonCfg.RateLimit.Attempts,
			Window:   time.Duration(jsonCfg.RateLimit.Window),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s" or "7d".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// ParseDuration extends time.ParseDuration with a whole-day unit: "7d" is
// seven days. Day values cannot be combined with other units.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		if n < 0 {
			return 0, errors.New("invalid duration " + strconv.Quote(s) + ": negative days")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

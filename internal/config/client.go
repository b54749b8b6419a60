package config

import (
	"time"

	"dario.cat/mergo"
)

// Client configures cmd/client. Only environment variables are read here;
// command-line flags are applied by the binary on top.
type Client struct {
	// ServerURL is the base URL of the API.
	// Env: VIDSHARE_URL
	ServerURL string `env:"VIDSHARE_URL"`

	// Timeout bounds every request.
	// Env: VIDSHARE_TIMEOUT
	Timeout time.Duration `env:"VIDSHARE_TIMEOUT"`

	// Token is a session token saved from a previous login.
	// Env: VIDSHARE_TOKEN
	Token string `env:"VIDSHARE_TOKEN"`
}

func clientDefaults() Client {
	return Client{
		ServerURL: "http://localhost:8080",
		Timeout:   15 * time.Second,
	}
}

// GetClientConfig reads the client environment and fills the gaps with
// defaults.
func GetClientConfig() (*Client, error) {
	cfg := &Client{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if err := mergo.Merge(cfg, clientDefaults()); err != nil {
		return nil, err
	}

	return cfg, nil
}

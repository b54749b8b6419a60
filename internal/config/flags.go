package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface. An empty host binds all
// interfaces.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:port
//	-grpc-address grpc health server address in format [host]:port
//	-d database DSN
//	-u upload directory
//	-c/-config json file path with configs
//	-env deployment environment (development|production)
//	-frontend-url frontend base URL
//	-jwt-secret session token signing secret
//	-jwt-issuer session token issuer name
//	-session-ttl session token lifetime (e.g. "7d", "12h")
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-redis-url redis URL for the attempt limiter
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var uploadDir string
	var jsonConfigPath string
	var environment string
	var frontendURL string
	var jwtSecret string
	var jwtIssuer string
	var sessionTTL string
	var requestTimeout time.Duration
	var redisURL string

	flag.Var(&serverAddress, "a", "Net address [host]:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address [host]:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&uploadDir, "u", "", "Upload directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&environment, "env", "", "Environment: development or production")
	flag.StringVar(&frontendURL, "frontend-url", "", "Frontend base URL")
	flag.StringVar(&jwtSecret, "jwt-secret", "", "Session token signing secret")
	flag.StringVar(&jwtIssuer, "jwt-issuer", "", "Session token issuer")
	flag.StringVar(&sessionTTL, "session-ttl", "", "Session token lifetime (e.g., 7d, 12h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&redisURL, "redis-url", "", "Redis URL for the attempt limiter")

	flag.Parse()

	var ttl time.Duration
	if sessionTTL != "" {
		var err error
		if ttl, err = ParseDuration(sessionTTL); err != nil {
			return nil, err
		}
	}

	return &StructuredConfig{
		App: App{
			Environment: environment,
			FrontendURL: frontendURL,
		},
		Auth: Auth{
			JWTSecret:   jwtSecret,
			TokenIssuer: jwtIssuer,
			SessionTTL:  ttl,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				UploadDir: uploadDir,
			},
			Redis: Redis{
				URL: redisURL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. It validates the port range and checks IP correctness unless
// host is "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	host, portString, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

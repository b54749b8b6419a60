package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
)

func serverConfig(server config.Server) *config.StructuredConfig {
	return &config.StructuredConfig{
		App:    config.App{FrontendURL: "http://localhost:3000"},
		Server: server,
	}
}

// Handlers are only constructed here, so nil services are never dereferenced.
func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		server   config.Server
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "rest and grpc", server: config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, wantHTTP: true, wantGRPC: true},
		{name: "rest only", server: config.Server{HTTPAddress: ":8080"}, wantHTTP: true},
		{name: "grpc only", server: config.Server{GRPCAddress: ":9090"}, wantGRPC: true},
		{name: "nothing to serve", server: config.Server{}, wantErr: errNoTransports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(nil, nil, serverConfig(tt.server), logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := serverConfig(config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"})

	h1, err := NewHandlers(nil, nil, cfg, logger.Nop())
	require.NoError(t, err)
	h2, err := NewHandlers(nil, nil, cfg, logger.Nop())
	require.NoError(t, err)

	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}

package server

import "context"

type Server interface {
	// RunServer blocks until ctx is done or a transport fails, then shuts
	// every transport down.
	RunServer(ctx context.Context) error

	Shutdown(ctx context.Context) error
}

// Package server runs the transport servers of the application.
//
// It owns the HTTP and gRPC server lifecycles: startup, waiting for the
// caller's context to end and graceful shutdown of all enabled transports
// within the configured deadline. Signal handling belongs to cmd/server.
package server

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that starts several
// workers in a unified way, and a bounded job Pool.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker and returns; implementations spawn their own
// goroutines and stop them when ctx is done or on Shutdown.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go w.loop(ctx)
//	}
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// Job is a unit of background work. The context is cancelled when the
// owning pool gives up draining on shutdown.
type Job func(ctx context.Context)

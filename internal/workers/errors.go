package workers

import "errors"

var (
	// ErrQueueFull is returned by Submit when the queue has no free slot.
	ErrQueueFull = errors.New("worker queue is full")

	// ErrPoolClosed is returned by Submit after Shutdown started.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrShutdownTimeout is returned by Shutdown when queued jobs did not
	// finish before the deadline.
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)

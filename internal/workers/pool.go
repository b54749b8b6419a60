package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-vidshare/internal/logger"
)

// Pool runs submitted jobs on a fixed number of goroutines. The queue is
// bounded; Submit never blocks.
type Pool struct {
	name    string
	size    int
	jobs    chan Job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	started bool
	cancel  context.CancelFunc
	logger  *logger.Logger
}

// NewPool creates a pool with size workers and a queue of queueSize jobs.
// Non-positive values fall back to one.
func NewPool(name string, size, queueSize int, log *logger.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Pool{
		name:   name,
		size:   size,
		jobs:   make(chan Job, queueSize),
		cancel: func() {},
		logger: log,
	}
}

// Submit enqueues job.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run starts the workers. Jobs outlive ctx cancellation: they are stopped
// only by Shutdown. Calling Run twice is a no-op.
func (p *Pool) Run(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	p.logger.Info().Str("pool", p.name).Int("workers", p.size).Int("queue", cap(p.jobs)).Msg("starting worker pool")
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.work(jobCtx, i)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.runJob(ctx, id, job)
	}
}

func (p *Pool) runJob(ctx context.Context, id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("pool", p.name).Int("worker", id).Interface("panic", r).Msg("job panicked")
		}
	}()
	job(ctx)
}

// Shutdown stops accepting jobs and waits for the queue to drain. When ctx
// ends first, running jobs are cancelled and [ErrShutdownTimeout] is
// returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info().Str("pool", p.name).Msg("worker pool drained")
		return nil
	case <-ctx.Done():
		p.cancel()
		return fmt.Errorf("%w: %s: %w", ErrShutdownTimeout, p.name, ctx.Err())
	}
}

// Pending reports the number of queued jobs.
func (p *Pool) Pending() int {
	return len(p.jobs)
}

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/logger"
)

func TestPool_RunsAllJobs(t *testing.T) {
	p := NewPool("test", 3, 10, logger.Nop())
	p.Run(context.Background())

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(func(context.Context) { count.Add(1) }))
	}

	require.NoError(t, p.Shutdown(context.Background()))
	assert.EqualValues(t, 10, count.Load())
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool("test", 1, 1, logger.Nop())

	// not started: the single slot fills up
	require.NoError(t, p.Submit(func(context.Context) {}))
	assert.ErrorIs(t, p.Submit(func(context.Context) {}), ErrQueueFull)
	assert.Equal(t, 1, p.Pending())
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := NewPool("test", 1, 1, logger.Nop())
	p.Run(context.Background())
	require.NoError(t, p.Shutdown(context.Background()))

	assert.ErrorIs(t, p.Submit(func(context.Context) {}), ErrPoolClosed)
	// second shutdown is harmless
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_JobsSurviveRunContextCancel(t *testing.T) {
	p := NewPool("test", 1, 1, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	p.Run(ctx)
	cancel()

	done := make(chan error, 1)
	require.NoError(t, p.Submit(func(jobCtx context.Context) { done <- jobCtx.Err() }))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_ShutdownTimeoutCancelsJobs(t *testing.T) {
	p := NewPool("test", 1, 1, logger.Nop())
	p.Run(context.Background())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.Shutdown(ctx)
	assert.ErrorIs(t, err, ErrShutdownTimeout)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("running job was not cancelled")
	}
}

func TestPool_PanicDoesNotKillWorker(t *testing.T) {
	p := NewPool("test", 1, 2, logger.Nop())
	p.Run(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, p.Submit(func(context.Context) { panic("boom") }))
	require.NoError(t, p.Submit(func(context.Context) { wg.Done() }))

	wg.Wait()
	require.NoError(t, p.Shutdown(context.Background()))
}

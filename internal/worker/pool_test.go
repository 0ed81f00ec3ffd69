package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := NewPool(ctx, 2, 8)

	var ran atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		pool.Submit(func(ctx context.Context) {
			if ran.Add(1) == 4 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs did not complete")
	}
	assert.Equal(t, int32(4), ran.Load())
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	// No workers: everything sits in the queue, overflow is dropped.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := NewPool(ctx, 0, 1)

	var ran atomic.Int32
	job := func(ctx context.Context) { ran.Add(1) }
	pool.Submit(job)
	pool.Submit(job) // dropped, queue already holds one

	assert.Equal(t, int32(0), ran.Load())
}

func TestPoolShutdownWaitsForInflight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := NewPool(ctx, 1, 4)

	var ran atomic.Int32
	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		ran.Add(1)
	})
	<-started

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	pool.Shutdown(shutdownCtx)

	assert.Equal(t, int32(1), ran.Load())
}

// Package worker runs fire-and-forget background jobs (report folds, admin
// report regeneration) outside the request path.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type Job func(ctx context.Context)

type Pool struct {
	queue chan Job
	wg    sync.WaitGroup
}

func NewPool(ctx context.Context, workerCount int, queueSize int) *Pool {
	pool := &Pool{
		queue: make(chan Job, queueSize),
	}

	for i := 0; i < workerCount; i++ {
		go pool.worker(ctx)
	}

	return pool
}

func (p *Pool) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Worker received shutdown signal")
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			p.wg.Add(1)
			job(ctx)
			p.wg.Done()
		}
	}
}

// Submit enqueues a job without blocking; when the queue is full the job is
// dropped and logged, matching the fire-and-forget contract.
func (p *Pool) Submit(job Job) {
	select {
	case p.queue <- job:
	default:
		log.Warn().Msg("Worker pool queue full, job dropped")
	}
}

// Shutdown closes the queue and waits for in-flight jobs, bounded by ctx.
func (p *Pool) Shutdown(ctx context.Context) {
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		log.Warn().Msg("Worker pool shutdown timed out")
	case <-done:
		log.Info().Msg("Worker pool shutdown complete")
	}
}
